package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/qs3c/swapi_films_server/internal/model"
	"github.com/qs3c/swapi_films_server/internal/model/dto"
	"github.com/qs3c/swapi_films_server/internal/pkg/pagination"
	"github.com/qs3c/swapi_films_server/internal/repository"
)

// bootstrapSyncKey 懒同步的 singleflight 键
const bootstrapSyncKey = "swapi-films-sync"

// FilmSyncer 全量同步
type FilmSyncer interface {
	SyncFilms(ctx context.Context) (int, error)
}

type FilmService struct {
	filmRepo    *repository.FilmRepository
	commentRepo *repository.CommentRepository
	syncer      FilmSyncer
	group       singleflight.Group
	log         zerolog.Logger
}

func NewFilmService(
	filmRepo *repository.FilmRepository,
	commentRepo *repository.CommentRepository,
	syncer FilmSyncer,
	log zerolog.Logger,
) *FilmService {
	return &FilmService{
		filmRepo:    filmRepo,
		commentRepo: commentRepo,
		syncer:      syncer,
		log:         log.With().Str("component", "film_service").Logger(),
	}
}

// List 分页获取影片，本地为空时先同步
func (s *FilmService) List(ctx context.Context, params pagination.Params) ([]*dto.FilmListItem, int64, error) {
	if err := s.ensureSynced(ctx); err != nil {
		return nil, 0, err
	}

	films, total, err := s.filmRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	if err := params.Check(total); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	counts, err := s.commentRepo.CountByFilmIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.FilmListItem, len(films))
	for i, f := range films {
		items[i] = &dto.FilmListItem{
			ID:           f.ID,
			Title:        f.Title,
			ReleaseDate:  f.ReleaseDate.Format(dto.DateLayout),
			CommentCount: counts[f.ID],
		}
	}

	return items, total, nil
}

// Get 获取影片详情及全部评论
func (s *FilmService) Get(ctx context.Context, id int64) (*dto.FilmDetail, error) {
	film, err := s.getFilm(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByFilmID(ctx, film.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CommentItem, len(comments))
	for i, c := range comments {
		items[i] = buildCommentItem(c)
	}

	return &dto.FilmDetail{
		ID:           film.ID,
		Title:        film.Title,
		EpisodeID:    film.EpisodeID,
		OpeningCrawl: film.OpeningCrawl,
		Director:     film.Director,
		Producer:     film.Producer,
		ReleaseDate:  film.ReleaseDate.Format(dto.DateLayout),
		CommentCount: int64(len(items)),
		Comments:     items,
	}, nil
}

// ensureSynced 本地没有影片时触发同步；同一进程内并发请求共享一次同步
func (s *FilmService) ensureSynced(ctx context.Context) error {
	count, err := s.filmRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	s.log.Info().Msg("no films in database, syncing from SWAPI")

	// 调用方断开不应中断其他等待者共享的同步
	syncCtx := context.WithoutCancel(ctx)
	_, err, shared := s.group.Do(bootstrapSyncKey, func() (interface{}, error) {
		// 前一轮同步可能刚刚完成
		if n, err := s.filmRepo.Count(syncCtx); err != nil || n > 0 {
			return n, err
		}
		return s.syncer.SyncFilms(syncCtx)
	})
	if err != nil {
		return fmt.Errorf("bootstrap sync: %w", err)
	}
	if shared {
		s.log.Debug().Msg("joined in-flight bootstrap sync")
	}
	return nil
}

func (s *FilmService) getFilm(ctx context.Context, id int64) (*model.Film, error) {
	film, err := s.filmRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFilmNotFound
		}
		return nil, err
	}
	return film, nil
}
