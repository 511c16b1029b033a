package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/service"
)

// ProfileHandler handles the caller's profile
type ProfileHandler struct {
	service *service.ProfileService
	logger  *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger,
	}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	profile, err := h.service.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, profile, h.logger)
}

// Update handles PUT /api/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req models.ProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	profile, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, profile, h.logger)
}
