package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/qs3c/swapi_films_server/config"
	"github.com/qs3c/swapi_films_server/internal/api/handler"
	"github.com/qs3c/swapi_films_server/internal/api/middleware"
)

type Router struct {
	filmHandler    *handler.FilmHandler
	commentHandler *handler.CommentHandler
	healthHandler  *handler.HealthHandler
	cfg            *config.Config
	log            zerolog.Logger
}

func NewRouter(
	filmHandler *handler.FilmHandler,
	commentHandler *handler.CommentHandler,
	healthHandler *handler.HealthHandler,
	cfg *config.Config,
	log zerolog.Logger,
) *Router {
	return &Router{
		filmHandler:    filmHandler,
		commentHandler: commentHandler,
		healthHandler:  healthHandler,
		cfg:            cfg,
		log:            log,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(r.log))
	engine.Use(middleware.Logger(r.log))
	engine.Use(middleware.CORS(r.cfg.CORS))

	engine.GET("/health", r.healthHandler.Check)

	api := engine.Group("/api")
	{
		// 影片
		films := api.Group("/films")
		{
			films.GET("/", r.filmHandler.List)
			films.GET("/:id/", r.filmHandler.Get)
			films.GET("/:id/comments/", r.filmHandler.Comments)
			films.POST("/:id/add-comment/", r.commentHandler.Create)
		}

		// 评论
		comments := api.Group("/comments")
		{
			comments.GET("/", r.commentHandler.List)
			comments.GET("/:id/", r.commentHandler.Get)
		}
	}

	return engine
}
