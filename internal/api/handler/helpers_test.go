package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/swapi_films_server/internal/pkg/cache"
	"github.com/qs3c/swapi_films_server/internal/pkg/pagination"
	"github.com/qs3c/swapi_films_server/internal/pkg/swapi"
	"github.com/qs3c/swapi_films_server/internal/repository"
	"github.com/qs3c/swapi_films_server/internal/service"
	"github.com/qs3c/swapi_films_server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testContext struct {
	DB    *gorm.DB
	Swapi *testutil.FakeSwapi
}

// setupRouter 组装真实的服务与路由，上游为 FakeSwapi
func setupRouter(t *testing.T, films []testutil.SwapiFilm) (*gin.Engine, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	fake := testutil.NewFakeSwapi(t, films)
	log := zerolog.Nop()

	filmRepo := repository.NewFilmRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	swapiService := service.NewSwapiService(swapi.New(swapi.WithBaseURL(fake.URL())), cache.NewDBCache(db), service.DefaultCacheTTL, log)
	syncService := service.NewSyncService(swapiService, filmRepo, log)
	filmService := service.NewFilmService(filmRepo, commentRepo, syncService, log)
	commentService := service.NewCommentService(commentRepo, filmRepo, log)

	paginator := pagination.New(pagination.DefaultPageSize, pagination.MaxPageSize)
	filmHandler := NewFilmHandler(filmService, commentService, paginator, log)
	commentHandler := NewCommentHandler(commentService, paginator, log)
	healthHandler := NewHealthHandler(db)

	router := gin.New()
	router.GET("/health", healthHandler.Check)
	router.GET("/api/films/", filmHandler.List)
	router.GET("/api/films/:id/", filmHandler.Get)
	router.GET("/api/films/:id/comments/", filmHandler.Comments)
	router.POST("/api/films/:id/add-comment/", commentHandler.Create)
	router.GET("/api/comments/", commentHandler.List)
	router.GET("/api/comments/:id/", commentHandler.Get)

	ctx := &testContext{
		DB:    db,
		Swapi: fake,
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return router, ctx, cleanup
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func parseResults(t *testing.T, resp map[string]interface{}) []interface{} {
	t.Helper()

	results, ok := resp["results"].([]interface{})
	require.True(t, ok, "results should be a list")
	return results
}
