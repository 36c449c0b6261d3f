package handlers

import (
	"context"
	"net/http"
	"time"

	"musicweb-api/helper"
	"musicweb-api/logging"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	Helper *helper.HTTPHelper
}

func NewHealthHandler(db *gorm.DB, h *helper.HTTPHelper) *HealthHandler {
	return &HealthHandler{db: db, Helper: h}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("health check failed")
		h.Helper.SendJSON(c, http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "down"})
		return
	}

	h.Helper.SendJSON(c, http.StatusOK, gin.H{"status": "healthy", "database": "up"})
}

func (h *HealthHandler) Index(c *gin.Context) {
	h.Helper.SendJSON(c, http.StatusOK, gin.H{
		"name":    "MusicWeb API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"auth":    "/auth",
			"music":   "/music",
			"reviews": "/reviews",
			"users":   "/users",
			"health":  "/health",
			"metrics": "/metrics",
		},
	})
}

func (h *HealthHandler) NotFound(c *gin.Context) {
	h.Helper.SendNotFoundError(c, "Route not found")
}
