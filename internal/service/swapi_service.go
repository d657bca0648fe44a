package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/qs3c/swapi_films_server/internal/pkg/cache"
	"github.com/qs3c/swapi_films_server/internal/pkg/swapi"
)

const (
	// DefaultCacheTTL 影片列表与单片缓存时间
	DefaultCacheTTL = 24 * time.Hour

	cacheKeyFilms      = "swapi_films"
	cacheKeyFilmPrefix = "swapi_film_"
)

// FilmFetcher 上游影片目录
type FilmFetcher interface {
	FetchAllFilms(ctx context.Context) ([]swapi.Film, error)
	FetchFilm(ctx context.Context, id int) (*swapi.Film, error)
}

// SwapiService 带缓存的 SWAPI 访问
type SwapiService struct {
	client FilmFetcher
	cache  cache.Cache
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSwapiService(client FilmFetcher, c cache.Cache, ttl time.Duration, log zerolog.Logger) *SwapiService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &SwapiService{
		client: client,
		cache:  c,
		ttl:    ttl,
		log:    log.With().Str("component", "swapi_service").Logger(),
	}
}

// GetFilms 获取全部影片（先查缓存）
func (s *SwapiService) GetFilms(ctx context.Context) ([]swapi.Film, error) {
	if data, ok := s.cache.Get(ctx, cacheKeyFilms); ok {
		var films []swapi.Film
		if err := json.Unmarshal(data, &films); err == nil {
			s.log.Info().Int("count", len(films)).Msg("returning cached SWAPI films")
			return films, nil
		}
		s.log.Warn().Str("key", cacheKeyFilms).Msg("failed to unmarshal cached films, refetching")
	}

	films, err := s.client.FetchAllFilms(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("error fetching films from SWAPI")
		return nil, fmt.Errorf("fetch films: %w", err)
	}

	s.store(ctx, cacheKeyFilms, films)
	s.log.Info().Int("count", len(films)).Msg("fetched and cached films from SWAPI")
	return films, nil
}

// GetFilm 获取单部影片（先查缓存）
func (s *SwapiService) GetFilm(ctx context.Context, swapiID int) (*swapi.Film, error) {
	key := fmt.Sprintf("%s%d", cacheKeyFilmPrefix, swapiID)

	if data, ok := s.cache.Get(ctx, key); ok {
		var film swapi.Film
		if err := json.Unmarshal(data, &film); err == nil {
			return &film, nil
		}
		s.log.Warn().Str("key", key).Msg("failed to unmarshal cached film, refetching")
	}

	film, err := s.client.FetchFilm(ctx, swapiID)
	if err != nil {
		s.log.Error().Err(err).Int("swapi_id", swapiID).Msg("error fetching film from SWAPI")
		return nil, fmt.Errorf("fetch film %d: %w", swapiID, err)
	}

	s.store(ctx, key, film)
	return film, nil
}

// store 写缓存失败只记录日志
func (s *SwapiService) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to marshal value for cache")
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to write cache")
	}
}
