package main

import (
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/qs3c/swapi_films_server/config"
	"github.com/qs3c/swapi_films_server/internal/api"
	"github.com/qs3c/swapi_films_server/internal/api/handler"
	"github.com/qs3c/swapi_films_server/internal/database"
	"github.com/qs3c/swapi_films_server/internal/pkg/cache"
	"github.com/qs3c/swapi_films_server/internal/pkg/logger"
	"github.com/qs3c/swapi_films_server/internal/pkg/pagination"
	"github.com/qs3c/swapi_films_server/internal/pkg/swapi"
	"github.com/qs3c/swapi_films_server/internal/repository"
	"github.com/qs3c/swapi_films_server/internal/service"
)

// app 持有一次命令执行所需的全部依赖
type app struct {
	cfg   *config.Config
	log   zerolog.Logger
	db    *gorm.DB
	rdb   *redis.Client
	cache cache.Cache

	filmRepo    *repository.FilmRepository
	commentRepo *repository.CommentRepository

	syncService    *service.SyncService
	filmService    *service.FilmService
	commentService *service.CommentService
}

func loadApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return newApp(cfg, logger.New(cfg.Log))
}

func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	// 初始化数据库
	db, err := database.Open(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	a := &app{cfg: cfg, log: log, db: db}

	// 仅 redis 缓存后端需要 Redis
	if cfg.Cache.Backend == cache.BackendRedis {
		rdb, err := database.NewRedis(&cfg.Redis)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.rdb = rdb
		log.Info().Msg("redis connected")
	}

	a.cache, err = cache.New(cfg.Cache, db, a.rdb)
	if err != nil {
		a.Close()
		return nil, err
	}

	// 初始化 Repository
	a.filmRepo = repository.NewFilmRepository(db)
	a.commentRepo = repository.NewCommentRepository(db)

	// 初始化 Service
	client := swapi.New(
		swapi.WithBaseURL(cfg.Swapi.BaseURL),
		swapi.WithTimeout(cfg.Swapi.Timeout),
		swapi.WithLogger(log),
	)
	swapiService := service.NewSwapiService(client, a.cache, cfg.Cache.TTL, log)
	a.syncService = service.NewSyncService(swapiService, a.filmRepo, log)
	a.filmService = service.NewFilmService(a.filmRepo, a.commentRepo, a.syncService, log)
	a.commentService = service.NewCommentService(a.commentRepo, a.filmRepo, log)

	return a, nil
}

// router 组装 HTTP 路由
func (a *app) router() *api.Router {
	paginator := pagination.New(a.cfg.Pagination.DefaultPageSize, a.cfg.Pagination.MaxPageSize)

	return api.NewRouter(
		handler.NewFilmHandler(a.filmService, a.commentService, paginator, a.log),
		handler.NewCommentHandler(a.commentService, paginator, a.log),
		handler.NewHealthHandler(a.db),
		a.cfg,
		a.log,
	)
}

// dbCache 数据库缓存后端，其他后端返回 nil
func (a *app) dbCache() *cache.DBCache {
	c, _ := a.cache.(*cache.DBCache)
	return c
}

func (a *app) Close() {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close redis")
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close database")
		}
	}
}
