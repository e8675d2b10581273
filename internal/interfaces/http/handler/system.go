package handler

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/salescrm/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

const healthCheckTimeout = 3 * time.Second

// HealthResponse reports the service and per-dependency state
type HealthResponse struct {
	Status  string            `json:"status" example:"healthy"`
	Version string            `json:"version,omitempty"`
	Time    string            `json:"time"`
	Checks  map[string]string `json:"checks"`
}

// SystemHandler serves liveness endpoints
type SystemHandler struct {
	version string
	checks  map[string]HealthCheck
}

// NewSystemHandler creates a SystemHandler
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{version: version, checks: make(map[string]HealthCheck)}
}

// AddCheck registers a dependency probe under name
func (h *SystemHandler) AddCheck(name string, check HealthCheck) *SystemHandler {
	h.checks[name] = check
	return h
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Description  Runs every dependency probe. Any failure answers 503.
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(map[string]string, len(names))
	var mu sync.Mutex
	var wg sync.WaitGroup
	healthy := true
	for _, name := range names {
		wg.Add(1)
		go func(name string, check HealthCheck) {
			defer wg.Done()
			state := "ok"
			if err := check(ctx); err != nil {
				logger.L(ctx).Warn("health check failed", zap.String("check", name), zap.Error(err))
				state = "error"
			}
			mu.Lock()
			results[name] = state
			if state != "ok" {
				healthy = false
			}
			mu.Unlock()
		}(name, h.checks[name])
	}
	wg.Wait()

	resp := HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Time:    time.Now().UTC().Format(time.RFC3339),
		Checks:  results,
	}
	status := http.StatusOK
	if !healthy {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

// Ping godoc
// @ID           ping
// @Summary      Ping
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
