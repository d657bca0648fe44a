package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/qs3c/swapi_films_server/internal/model"
	"github.com/qs3c/swapi_films_server/internal/model/dto"
	"github.com/qs3c/swapi_films_server/internal/pkg/pagination"
	"github.com/qs3c/swapi_films_server/internal/repository"
)

const (
	MaxCommentTextLength = 500
	MaxAuthorNameLength  = 100

	msgTextEmpty    = "Comment text cannot be empty."
	msgRequired     = "This field is required."
	msgInvalidValue = "Enter a valid value."
)

var (
	msgTextTooLong   = fmt.Sprintf("Comment text cannot exceed %d characters.", MaxCommentTextLength)
	msgAuthorTooLong = fmt.Sprintf("Ensure this field has no more than %d characters.", MaxAuthorNameLength)
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	filmRepo    *repository.FilmRepository
	validate    *validator.Validate
	log         zerolog.Logger
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	filmRepo *repository.FilmRepository,
	log zerolog.Logger,
) *CommentService {
	v := validator.New()
	// 错误按 json 字段名返回
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// dto 中以别名引用，长度上限只在这里定义
	v.RegisterAlias("author_name", fmt.Sprintf("required,max=%d", MaxAuthorNameLength))

	return &CommentService{
		commentRepo: commentRepo,
		filmRepo:    filmRepo,
		validate:    v,
		log:         log.With().Str("component", "comment_service").Logger(),
	}
}

// Validate 裁剪并校验评论请求，无错误时返回 nil
func (s *CommentService) Validate(req *dto.CreateCommentRequest) *ValidationError {
	req.Text = strings.TrimSpace(req.Text)
	req.AuthorName = strings.TrimSpace(req.AuthorName)

	verr := &ValidationError{}

	switch {
	case req.Text == "":
		verr.Add("text", msgTextEmpty)
	case utf8.RuneCountInString(req.Text) > MaxCommentTextLength:
		verr.Add("text", msgTextTooLong)
	}

	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			verr.Add("non_field_errors", msgInvalidValue)
		}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), fieldMessage(fe))
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return msgRequired
	case "max":
		return msgAuthorTooLong
	default:
		return msgInvalidValue
	}
}

// Create 为影片发表评论
func (s *CommentService) Create(ctx context.Context, filmID int64, req *dto.CreateCommentRequest, authorIP string) (*dto.CommentItem, error) {
	if _, err := s.getFilm(ctx, filmID); err != nil {
		return nil, err
	}

	if verr := s.Validate(req); verr != nil {
		return nil, verr
	}

	comment := &model.Comment{
		FilmID:     filmID,
		Text:       req.Text,
		AuthorName: req.AuthorName,
		AuthorIP:   authorIP,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		s.log.Error().Err(err).Int64("film_id", filmID).Msg("failed to create comment")
		return nil, err
	}

	s.log.Info().Int64("comment_id", comment.ID).Int64("film_id", filmID).Msg("comment created")
	return buildCommentItem(comment), nil
}

// ListByFilmID 分页获取影片评论，影片不存在返回 ErrFilmNotFound
func (s *CommentService) ListByFilmID(ctx context.Context, filmID int64, params pagination.Params) ([]*dto.CommentItem, int64, error) {
	if _, err := s.getFilm(ctx, filmID); err != nil {
		return nil, 0, err
	}
	return s.List(ctx, &filmID, params)
}

// List 分页获取评论，filmID 为空时返回全部
func (s *CommentService) List(ctx context.Context, filmID *int64, params pagination.Params) ([]*dto.CommentItem, int64, error) {
	comments, total, err := s.commentRepo.List(ctx, filmID, params)
	if err != nil {
		return nil, 0, err
	}
	if err := params.Check(total); err != nil {
		return nil, 0, err
	}

	items := make([]*dto.CommentItem, len(comments))
	for i, c := range comments {
		items[i] = buildCommentItem(c)
	}
	return items, total, nil
}

// Get 获取单条评论
func (s *CommentService) Get(ctx context.Context, id int64) (*dto.CommentItem, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return buildCommentItem(comment), nil
}

func (s *CommentService) getFilm(ctx context.Context, id int64) (*model.Film, error) {
	film, err := s.filmRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	return film, nil
}

func buildCommentItem(c *model.Comment) *dto.CommentItem {
	return &dto.CommentItem{
		ID:         c.ID,
		Film:       c.FilmID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
