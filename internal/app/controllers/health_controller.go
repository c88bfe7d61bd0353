package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AriaGT/sistema-libreria/internal/app/models/dto"
	"github.com/AriaGT/sistema-libreria/internal/app/repositories"
)

// HealthController reports service liveness
type HealthController struct {
	store repositories.Store
}

// NewHealthController creates a new HealthController
func NewHealthController(store repositories.Store) *HealthController {
	return &HealthController{store: store}
}

// Health checks that the store accepts a unit of work
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is healthy"
// @Failure 503 {object} dto.HealthResponse "Store unavailable"
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	err := c.store.Atomic(checkCtx, func(ctx context.Context, r *repositories.Repositories) error {
		_, err := r.Grades.List(ctx)
		return err
	})
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable"})
		return
	}

	ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// Ping answers pong
// @Summary Ping
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "pong"
// @Router /ping [get]
func (c *HealthController) Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "pong"})
}
