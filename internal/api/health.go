package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether storage answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves /api/health.
type HealthHandler struct {
	responder
	db Pinger
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db Pinger, r responder) *HealthHandler {
	return &HealthHandler{responder: r, db: db}
}

var endpoints = gin.H{
	"customers": "/api/customers",
	"menu":      "/api/menu",
	"orders":    "/api/orders",
	"auth":      "/api/auth/login",
}

// Check pings the database. A failed ping answers 503.
func (h *HealthHandler) Check() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, database, success := http.StatusOK, "ok", true
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", "error", err)
			status, database, success = http.StatusServiceUnavailable, "unavailable", false
		}
		c.JSON(status, gin.H{
			"success":   success,
			"message":   "Tiffin CRM API is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  database,
			"endpoints": endpoints,
		})
	}
}
