package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qs3c/swapi_films_server/internal/model"
	"github.com/qs3c/swapi_films_server/internal/pkg/swapi"
	"github.com/qs3c/swapi_films_server/internal/repository"
)

// SyncService 把 SWAPI 影片同步到本地，按 swapi_id upsert
type SyncService struct {
	swapiService *SwapiService
	filmRepo     *repository.FilmRepository
	log          zerolog.Logger
}

func NewSyncService(swapiService *SwapiService, filmRepo *repository.FilmRepository, log zerolog.Logger) *SyncService {
	return &SyncService{
		swapiService: swapiService,
		filmRepo:     filmRepo,
		log:          log.With().Str("component", "sync_service").Logger(),
	}
}

// SyncFilms 全量同步，返回写入的影片数
// 先解析全部记录再在一个事务里写入，任一记录失败则整批失败
func (s *SyncService) SyncFilms(ctx context.Context) (int, error) {
	records, err := s.swapiService.GetFilms(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("error syncing films")
		return 0, err
	}

	films := make([]*model.Film, 0, len(records))
	for i := range records {
		film, err := toFilmModel(&records[i])
		if err != nil {
			s.log.Error().Err(err).Msg("error syncing films")
			return 0, fmt.Errorf("sync films: %w", err)
		}
		films = append(films, film)
	}

	if err := s.filmRepo.UpsertAll(ctx, films); err != nil {
		s.log.Error().Err(err).Msg("error syncing films")
		return 0, fmt.Errorf("sync films: persist: %w", err)
	}

	for _, film := range films {
		s.log.Debug().Int("swapi_id", film.SwapiID).Str("title", film.Title).Msg("upserted film")
	}
	s.log.Info().Int("count", len(films)).Msg("films sync completed successfully")
	return len(films), nil
}

// SyncFilm 刷新单部影片
func (s *SyncService) SyncFilm(ctx context.Context, swapiID int) (*model.Film, error) {
	record, err := s.swapiService.GetFilm(ctx, swapiID)
	if err != nil {
		return nil, err
	}

	film, err := toFilmModel(record)
	if err != nil {
		return nil, fmt.Errorf("sync film %d: %w", swapiID, err)
	}
	if film.SwapiID != swapiID {
		return nil, fmt.Errorf("sync film %d: upstream returned id %d", swapiID, film.SwapiID)
	}

	if err := s.filmRepo.Upsert(ctx, film); err != nil {
		return nil, fmt.Errorf("sync film %d: persist: %w", swapiID, err)
	}

	s.log.Info().Int("swapi_id", swapiID).Str("title", film.Title).Msg("film synced")
	return s.filmRepo.GetBySwapiID(ctx, swapiID)
}

func toFilmModel(record *swapi.Film) (*model.Film, error) {
	swapiID, err := record.ExternalID()
	if err != nil {
		return nil, err
	}
	releaseDate, err := record.ReleaseDateTime()
	if err != nil {
		return nil, err
	}

	return &model.Film{
		SwapiID:      swapiID,
		Title:        record.Title,
		EpisodeID:    record.EpisodeID,
		OpeningCrawl: record.OpeningCrawl,
		Director:     record.Director,
		Producer:     record.Producer,
		ReleaseDate:  releaseDate,
	}, nil
}
