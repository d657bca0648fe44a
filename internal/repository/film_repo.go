package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs3c/swapi_films_server/internal/model"
	"github.com/qs3c/swapi_films_server/internal/pkg/pagination"
)

type FilmRepository struct {
	db *gorm.DB
}

func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// Count 本地影片总数
func (r *FilmRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Film{}).Count(&count).Error
	return count, err
}

// GetByID 根据本地 ID 获取影片
func (r *FilmRepository) GetByID(ctx context.Context, id int64) (*model.Film, error) {
	var film model.Film
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&film).Error
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// GetBySwapiID 根据外部 ID 获取影片
func (r *FilmRepository) GetBySwapiID(ctx context.Context, swapiID int) (*model.Film, error) {
	var film model.Film
	err := r.db.WithContext(ctx).Where("swapi_id = ?", swapiID).First(&film).Error
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// List 按上映日期升序分页获取影片
func (r *FilmRepository) List(ctx context.Context, params pagination.Params) ([]*model.Film, int64, error) {
	var films []*model.Film
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Film{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("release_date ASC").Order("id ASC").
		Offset(params.Offset()).Limit(params.PageSize).Find(&films).Error
	if err != nil {
		return nil, 0, err
	}

	return films, total, nil
}

// Upsert 按 swapi_id 插入或整体覆盖同步字段
func (r *FilmRepository) Upsert(ctx context.Context, film *model.Film) error {
	return upsertFilm(r.db.WithContext(ctx), film)
}

// UpsertAll 在同一事务中写入全部影片，任意一条失败则全部回滚
func (r *FilmRepository) UpsertAll(ctx context.Context, films []*model.Film) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, film := range films {
			if err := upsertFilm(tx, film); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertFilm(db *gorm.DB, film *model.Film) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "swapi_id"}},
		DoUpdates: clause.AssignmentColumns(model.FilmSyncColumns),
	}).Create(film).Error
}
