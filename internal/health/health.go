// Package health exposes the service health endpoint.
package health

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StartupContext captures immutable facts about the running process, recorded
// once at startup.
type StartupContext struct {
	StartedAt   time.Time
	Version     string
	Environment string
}

// Handler reports service health: process identity, uptime, and the state of
// the database dependency.
type Handler struct {
	db      *sql.DB
	startup StartupContext
	logger  *slog.Logger
}

// NewHandler creates a new health handler.
func NewHandler(db *sql.DB, startup StartupContext, logger *slog.Logger) *Handler {
	return &Handler{db: db, startup: startup, logger: logger}
}

// HealthHandler reports the current service status.
// GET /health
// Returns 200 when all dependencies respond, 503 when the database is down.
func (h *Handler) HealthHandler(c *gin.Context) {
	now := time.Now().UTC()

	status := "healthy"
	statusCode := http.StatusOK
	components := gin.H{"database": "ok"}

	if h.db == nil {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
		components["database"] = "error"
	} else if err := h.db.PingContext(c.Request.Context()); err != nil {
		h.logger.Warn("health check: database ping failed", slog.Any("error", err))
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
		components["database"] = "error"
	}

	c.JSON(statusCode, gin.H{
		"status":         status,
		"version":        h.startup.Version,
		"environment":    h.startup.Environment,
		"started_at":     h.startup.StartedAt,
		"uptime_seconds": int64(now.Sub(h.startup.StartedAt).Seconds()),
		"timestamp":      now,
		"components":     components,
	})
}
