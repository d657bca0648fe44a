package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const serviceName = "swapi-films"

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check 健康检查
// GET /health
func (h *HealthHandler) Check(c *gin.Context) {
	status, code, dbStatus := "healthy", http.StatusOK, "ok"
	if err := h.ping(c.Request.Context()); err != nil {
		status, code, dbStatus = "unhealthy", http.StatusServiceUnavailable, "unavailable"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"service":   serviceName,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) ping(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
