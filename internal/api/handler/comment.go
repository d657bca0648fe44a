package handler

import (
	"errors"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/qs3c/swapi_films_server/internal/api/middleware"
	"github.com/qs3c/swapi_films_server/internal/model/dto"
	"github.com/qs3c/swapi_films_server/internal/pkg/pagination"
	"github.com/qs3c/swapi_films_server/internal/pkg/response"
	"github.com/qs3c/swapi_films_server/internal/service"
)

const filmIDQuery = "film_id"

type CommentHandler struct {
	commentService *service.CommentService
	paginator      *pagination.Paginator
	log            zerolog.Logger
}

func NewCommentHandler(commentService *service.CommentService, paginator *pagination.Paginator, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		paginator:      paginator,
		log:            log.With().Str("handler", "comment").Logger(),
	}
}

// Create 发表评论
// POST /api/films/:id/add-comment/
func (h *CommentHandler) Create(c *gin.Context) {
	filmID, ok := parseID(c)
	if !ok {
		response.NotFoundError(c, msgFilmNotFound)
		return
	}

	var req dto.CreateCommentRequest
	// 空请求体按空对象处理，交给字段校验
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ParamError(c, "Invalid request body.")
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), filmID, &req, clientIP(c))
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrFilmNotFound):
			response.NotFoundError(c, msgFilmNotFound)
		case errors.As(err, &verr):
			response.ValidationError(c, verr.Fields)
		default:
			h.log.Error().Err(err).Int64("film_id", filmID).Str("request_id", middleware.GetRequestID(c)).Msg("error adding comment")
			response.ServerError(c, "Failed to add comment")
		}
		return
	}

	response.Created(c, comment)
}

// List 全部评论，可按 film_id 过滤
// GET /api/comments/
func (h *CommentHandler) List(c *gin.Context) {
	params, err := h.paginator.Parse(c.Request.URL.Query())
	if err != nil {
		response.InvalidPage(c)
		return
	}

	var filmID *int64
	if raw, ok := c.GetQuery(filmIDQuery); ok && raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// 非数字的 film_id 不匹配任何评论
			id = 0
		}
		filmID = &id
	}

	items, total, err := h.commentService.List(c.Request.Context(), filmID, params)
	if err != nil {
		switch {
		case errors.Is(err, pagination.ErrInvalidPage):
			response.InvalidPage(c)
		default:
			h.log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("error retrieving comments")
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessPage(c, params, total, items)
}

// Get 评论详情
// GET /api/comments/:id/
func (h *CommentHandler) Get(c *gin.Context) {
	commentID, ok := parseID(c)
	if !ok {
		response.NotFoundError(c, msgCommentNotFound)
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), commentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			response.NotFoundError(c, msgCommentNotFound)
		default:
			h.log.Error().Err(err).Int64("comment_id", commentID).Str("request_id", middleware.GetRequestID(c)).Msg("error retrieving comment")
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, comment)
}

// clientIP 优先取 X-Forwarded-For 的第一个地址，否则取连接的远端地址
// 非法地址一律忽略，结果最长为 IPv6 文本长度
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip.String()
		}
	}

	addr := strings.TrimSpace(c.Request.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	if ip := net.ParseIP(addr); ip != nil {
		return ip.String()
	}
	return ""
}
