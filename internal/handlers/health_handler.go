package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/cache"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/repositories"
	"github.com/hoojinguyen/tech-interview-system-sub000/internal/utils"
)

const serviceName = "interview-platform"

type HealthHandler struct {
	BaseHandler
	repo      repositories.Repository
	cache     *cache.CacheManager
	version   string
	startedAt time.Time
}

func NewHealthHandler(repo repositories.Repository, cm *cache.CacheManager, version string, logger utils.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(logger),
		repo:        repo,
		cache:       cm,
		version:     version,
		startedAt:   time.Now().UTC(),
	}
}

// Health handles GET /health: a cheap liveness summary.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthStatus{
		Status:    "ok",
		Service:   serviceName,
		Version:   h.version,
		Timestamp: time.Now().UTC(),
	})
}

// Detailed handles GET /health/detailed, probing each dependency with
// per-check latency. Degraded cache does not fail the endpoint; a dead
// database does.
func (h *HealthHandler) Detailed(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]models.ComponentHealth{
		"database": h.checkDatabase(ctx),
		"cache":    h.checkCache(ctx),
	}

	status := "ok"
	httpStatus := http.StatusOK
	if checks["database"].Status != "ok" {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else if checks["cache"].Status != "ok" {
		status = "degraded"
	}

	c.JSON(httpStatus, models.HealthStatus{
		Status:    status,
		Service:   serviceName,
		Version:   h.version,
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}

// Ready handles GET /health/ready. The service is ready when the
// database answers.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, models.HealthStatus{
			Status:    "not ready",
			Service:   serviceName,
			Timestamp: time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, models.HealthStatus{
		Status:    "ready",
		Service:   serviceName,
		Timestamp: time.Now().UTC(),
	})
}

// Live handles GET /health/live. The process is alive if it can answer.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthStatus{
		Status:    "alive",
		Service:   serviceName,
		Timestamp: time.Now().UTC(),
	})
}

// Status handles GET /status with build and uptime metadata.
func (h *HealthHandler) Status(c *gin.Context) {
	h.respondSuccess(c, http.StatusOK, gin.H{
		"service": serviceName,
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
		"started": h.startedAt,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) models.ComponentHealth {
	start := time.Now()
	if err := h.repo.Ping(ctx); err != nil {
		return models.ComponentHealth{Status: "error", Error: err.Error()}
	}
	return models.ComponentHealth{
		Status:  "ok",
		Latency: time.Since(start).Round(time.Millisecond).String(),
	}
}

func (h *HealthHandler) checkCache(ctx context.Context) models.ComponentHealth {
	start := time.Now()
	if err := h.cache.HealthCheck(ctx); err != nil {
		return models.ComponentHealth{Status: "unavailable", Error: err.Error()}
	}
	return models.ComponentHealth{
		Status:  "ok",
		Latency: time.Since(start).Round(time.Millisecond).String(),
	}
}
