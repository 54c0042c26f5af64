package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is any dependency the health check reaches out to.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	checks map[string]Pinger
	log    *zap.Logger
}

func NewHealthHandler(checks map[string]Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{checks: checks, log: log}
}

// Health godoc
// @Summary  Liveness and dependency status
// @Tags     Health
// @Produce  json
// @Success  200  {object}  map[string]any
// @Router   /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string, len(h.checks))
	status := "ok"
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			requestLog(c, h.log).Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			deps[name] = "down"
			status = "degraded"
			continue
		}
		deps[name] = "ok"
	}
	// The site keeps serving sample data without its dependencies.
	c.JSON(http.StatusOK, gin.H{"status": status, "dependencies": deps})
}
