package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"lessonstore/internal/commons"
)

const healthPingTimeout = 2 * time.Second

// Pinger reports whether the backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type HealthHandler struct {
	pinger  Pinger
	version string
	logger  *zap.Logger
}

func NewHealthHandler(pinger Pinger, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{pinger: pinger, version: version, logger: logger}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
	status := http.StatusOK

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("store ping failed", zap.Error(err))
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	commons.WriteJSON(w, status, response, h.logger)
}
