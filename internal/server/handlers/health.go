package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"starwars-catalog/internal/shared/response"
)

// Pinger is a backing store the health check probes
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
}

type HealthHandler struct {
	db     Pinger
	cache  Pinger
	logger *slog.Logger
}

// NewHealthHandler takes a nil cache when Redis is disabled
func NewHealthHandler(db Pinger, cache Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, logger: logger}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  "connected",
		Redis:     "disabled",
	}
	status := http.StatusOK

	if err := h.db.PingContext(ctx); err != nil {
		logger.Warn("Database ping failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		status = http.StatusServiceUnavailable
	}

	if h.cache != nil {
		resp.Redis = "connected"
		if err := h.cache.PingContext(ctx); err != nil {
			// The rate limiter falls back to memory, so Redis loss only degrades
			logger.Warn("Redis ping failed", "error", err)
			resp.Redis = "disconnected"
			if status == http.StatusOK {
				resp.Status = "degraded"
			}
		}
	}

	response.Success(w, status, resp)
}
