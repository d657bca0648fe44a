package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/qs3c/swapi_films_server/internal/pkg/cache"
	"github.com/qs3c/swapi_films_server/internal/pkg/swapi"
	"github.com/qs3c/swapi_films_server/internal/repository"
	"github.com/qs3c/swapi_films_server/internal/testutil"
)

// testEnv 测试用的服务组合，上游为 FakeSwapi，缓存为数据库缓存
type testEnv struct {
	DB          *gorm.DB
	Swapi       *testutil.FakeSwapi
	Cache       *cache.DBCache
	FilmRepo    *repository.FilmRepository
	CommentRepo *repository.CommentRepository

	SwapiService   *SwapiService
	SyncService    *SyncService
	FilmService    *FilmService
	CommentService *CommentService
}

func setupServices(t *testing.T, films []testutil.SwapiFilm) (*testEnv, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	fake := testutil.NewFakeSwapi(t, films)
	log := zerolog.Nop()

	env := &testEnv{
		DB:          db,
		Swapi:       fake,
		Cache:       cache.NewDBCache(db),
		FilmRepo:    repository.NewFilmRepository(db),
		CommentRepo: repository.NewCommentRepository(db),
	}

	client := swapi.New(swapi.WithBaseURL(fake.URL()))
	env.SwapiService = NewSwapiService(client, env.Cache, DefaultCacheTTL, log)
	env.SyncService = NewSyncService(env.SwapiService, env.FilmRepo, log)
	env.FilmService = NewFilmService(env.FilmRepo, env.CommentRepo, env.SyncService, log)
	env.CommentService = NewCommentService(env.CommentRepo, env.FilmRepo, log)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return env, cleanup
}

// mockSyncer 可控的同步器
type mockSyncer struct {
	mock.Mock
}

func (m *mockSyncer) SyncFilms(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
