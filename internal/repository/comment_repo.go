package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs3c/swapi_films_server/internal/model"
	"github.com/qs3c/swapi_films_server/internal/pkg/pagination"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetByID 根据 ID 获取评论
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// List 按创建时间升序分页获取评论，filmID 为空时不过滤
func (r *CommentRepository) List(ctx context.Context, filmID *int64, params pagination.Params) ([]*model.Comment, int64, error) {
	var comments []*model.Comment
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Comment{})
	if filmID != nil {
		query = query.Where("film_id = ?", *filmID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at ASC").Order("id ASC").
		Offset(params.Offset()).Limit(params.PageSize).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// ListByFilmID 获取影片的全部评论（不分页）
func (r *CommentRepository) ListByFilmID(ctx context.Context, filmID int64) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Where("film_id = ?", filmID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// CountByFilmID 获取影片的评论数
func (r *CommentRepository) CountByFilmID(ctx context.Context, filmID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("film_id = ?", filmID).Count(&count).Error
	return count, err
}

type filmCommentCount struct {
	FilmID int64
	Count  int64
}

// CountByFilmIDs 批量获取评论数，没有评论的影片不出现在结果中
func (r *CommentRepository) CountByFilmIDs(ctx context.Context, filmIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(filmIDs))
	if len(filmIDs) == 0 {
		return counts, nil
	}

	var rows []filmCommentCount
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Select("film_id, COUNT(*) AS count").
		Where("film_id IN ?", filmIDs).
		Group("film_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.FilmID] = row.Count
	}
	return counts, nil
}
