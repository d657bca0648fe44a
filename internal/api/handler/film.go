package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/qs3c/swapi_films_server/internal/api/middleware"
	"github.com/qs3c/swapi_films_server/internal/pkg/pagination"
	"github.com/qs3c/swapi_films_server/internal/pkg/response"
	"github.com/qs3c/swapi_films_server/internal/service"
)

const (
	msgFilmNotFound    = "Film not found"
	msgRetrieveFailed  = "Failed to retrieve films"
	msgCommentNotFound = "Comment not found"
)

type FilmHandler struct {
	filmService    *service.FilmService
	commentService *service.CommentService
	paginator      *pagination.Paginator
	log            zerolog.Logger
}

func NewFilmHandler(
	filmService *service.FilmService,
	commentService *service.CommentService,
	paginator *pagination.Paginator,
	log zerolog.Logger,
) *FilmHandler {
	return &FilmHandler{
		filmService:    filmService,
		commentService: commentService,
		paginator:      paginator,
		log:            log.With().Str("handler", "film").Logger(),
	}
}

// List 影片列表
// GET /api/films/
func (h *FilmHandler) List(c *gin.Context) {
	params, err := h.paginator.Parse(c.Request.URL.Query())
	if err != nil {
		response.InvalidPage(c)
		return
	}

	items, total, err := h.filmService.List(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, pagination.ErrInvalidPage):
			response.InvalidPage(c)
		default:
			h.log.Error().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("error retrieving films")
			response.ServerError(c, msgRetrieveFailed)
		}
		return
	}

	response.SuccessPage(c, params, total, items)
}

// Get 影片详情
// GET /api/films/:id/
func (h *FilmHandler) Get(c *gin.Context) {
	filmID, ok := parseID(c)
	if !ok {
		response.NotFoundError(c, msgFilmNotFound)
		return
	}

	film, err := h.filmService.Get(c.Request.Context(), filmID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFilmNotFound):
			response.NotFoundError(c, msgFilmNotFound)
		default:
			h.log.Error().Err(err).Int64("film_id", filmID).Str("request_id", middleware.GetRequestID(c)).Msg("error retrieving film")
			response.ServerError(c, "")
		}
		return
	}

	response.Success(c, film)
}

// Comments 影片评论列表
// GET /api/films/:id/comments/
func (h *FilmHandler) Comments(c *gin.Context) {
	filmID, ok := parseID(c)
	if !ok {
		response.NotFoundError(c, msgFilmNotFound)
		return
	}

	params, err := h.paginator.Parse(c.Request.URL.Query())
	if err != nil {
		response.InvalidPage(c)
		return
	}

	items, total, err := h.commentService.ListByFilmID(c.Request.Context(), filmID, params)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFilmNotFound):
			response.NotFoundError(c, msgFilmNotFound)
		case errors.Is(err, pagination.ErrInvalidPage):
			response.InvalidPage(c)
		default:
			h.log.Error().Err(err).Int64("film_id", filmID).Str("request_id", middleware.GetRequestID(c)).Msg("error retrieving comments")
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessPage(c, params, total, items)
}

// parseID 解析路径中的正整数 ID
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
