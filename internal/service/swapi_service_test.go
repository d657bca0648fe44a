package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/swapi_films_server/internal/pkg/swapi"
	"github.com/qs3c/swapi_films_server/internal/testutil"
)

func TestSwapiService_GetFilms_UsesCache(t *testing.T) {
	env, cleanup := setupServices(t, testutil.SwapiFilms())
	defer cleanup()

	ctx := context.Background()

	films, err := env.SwapiService.GetFilms(ctx)
	require.NoError(t, err)
	assert.Len(t, films, 6)
	assert.Equal(t, 1, env.Swapi.ListCalls())

	// 第二次命中缓存，不访问上游
	films, err = env.SwapiService.GetFilms(ctx)
	require.NoError(t, err)
	assert.Len(t, films, 6)
	assert.Equal(t, 1, env.Swapi.ListCalls())
}

func TestSwapiService_GetFilms_CorruptCacheFallsThrough(t *testing.T) {
	env, cleanup := setupServices(t, testutil.SwapiFilms())
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, env.Cache.Set(ctx, cacheKeyFilms, []byte("{not json"), DefaultCacheTTL))

	films, err := env.SwapiService.GetFilms(ctx)
	require.NoError(t, err)
	assert.Len(t, films, 6)
	assert.Equal(t, 1, env.Swapi.ListCalls())

	// 缓存已被覆盖为有效数据
	_, err = env.SwapiService.GetFilms(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, env.Swapi.ListCalls())
}

func TestSwapiService_GetFilms_UpstreamFailure(t *testing.T) {
	env, cleanup := setupServices(t, testutil.SwapiFilms())
	defer cleanup()

	env.Swapi.SetStatus(http.StatusBadGateway)

	_, err := env.SwapiService.GetFilms(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, swapi.ErrUpstreamUnavailable)

	// 失败结果不写缓存
	_, ok := env.Cache.Get(context.Background(), cacheKeyFilms)
	assert.False(t, ok)
}

func TestSwapiService_GetFilm(t *testing.T) {
	env, cleanup := setupServices(t, testutil.SwapiFilms())
	defer cleanup()

	ctx := context.Background()

	film, err := env.SwapiService.GetFilm(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "The Empire Strikes Back", film.Title)

	film, err = env.SwapiService.GetFilm(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "The Empire Strikes Back", film.Title)
	assert.Equal(t, 1, env.Swapi.FilmCalls())

	_, err = env.SwapiService.GetFilm(ctx, 42)
	assert.ErrorIs(t, err, swapi.ErrFilmNotFound)
}
