// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/ericfisherdev/kbdash/internal/domain/model"
)

// Handler is the HTTP driving adapter that serves the JSON API.
type Handler struct {
	credentials model.Credentials
	logger      *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(credentials model.Credentials, logger *slog.Logger) *Handler {
	return &Handler{
		credentials: credentials,
		logger:      logger,
	}
}

// RegisterAPIRoutes registers the JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// Health reports liveness and whether the backend credentials were injected.
// Unusable credentials do not fail the check; the page still renders its
// fallback values.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	state := h.credentials.State()
	if state != model.CredentialStateConfigured {
		h.logger.Warn("health check with unusable credentials", "state", state)
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Credentials: string(state),
	})
}
