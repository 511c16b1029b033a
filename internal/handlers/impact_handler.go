package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/service"
)

// ImpactHandler serves the impact dashboard statistics
type ImpactHandler struct {
	service *service.ImpactService
	logger  *slog.Logger
}

// NewImpactHandler creates a new impact handler
func NewImpactHandler(service *service.ImpactService, logger *slog.Logger) *ImpactHandler {
	return &ImpactHandler{
		service: service,
		logger:  logger,
	}
}

// Get handles GET /api/impact
// The body is always the tagged envelope: success with impact, or failure with error.
func (h *ImpactHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Compute(r.Context())
	if err != nil {
		WriteJSON(w, http.StatusInternalServerError, models.ImpactResponse{
			Success: false,
			Error:   "Failed to fetch impact statistics",
		}, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, models.ImpactResponse{
		Success: true,
		Impact:  stats,
	}, h.logger)
}
