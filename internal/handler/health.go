package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/forgo/festival/api/internal/model"
)

// Pinger reports whether the document store answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /health
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRoutes mounts GET /health
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Warn("health check failed", slog.String("error", err.Error()))
		apiErr := model.NewDatabaseError()
		apiErr.Status = http.StatusServiceUnavailable
		WriteError(w, apiErr)
		return
	}

	WriteResult(w, nil)
}
