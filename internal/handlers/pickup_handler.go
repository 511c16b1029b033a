package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/service"
)

// PickupHandler handles reservation HTTP requests
type PickupHandler struct {
	service *service.PickupService
	log     *slog.Logger
}

// NewPickupHandler creates a new pickup handler
func NewPickupHandler(service *service.PickupService, log *slog.Logger) *PickupHandler {
	return &PickupHandler{
		service: service,
		log:     log,
	}
}

// Reserve handles POST /api/pickups
func (h *PickupHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.log)
	if !ok {
		return
	}

	var req models.ReserveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	pickup, err := h.service.Reserve(r.Context(), id, req)
	if err != nil {
		h.log.Info("reservation rejected", "food_item_id", req.FoodItemID, "error", err)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, pickup, h.log)
}

// ListMine handles GET /api/pickups
func (h *PickupHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.log)
	if !ok {
		return
	}

	pickups, err := h.service.ListMine(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, pickups, h.log)
}

// ListForRestaurant handles GET /api/restaurants/{restaurantId}/pickups
func (h *PickupHandler) ListForRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.log)
	if !ok {
		return
	}

	restaurantID, err := urlID(r, "restaurantId")
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	pickups, err := h.service.ListForRestaurant(r.Context(), id, restaurantID)
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, pickups, h.log)
}

// UpdateStatus handles PATCH /api/pickups/{pickupId}/status
func (h *PickupHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.log)
	if !ok {
		return
	}

	pickupID, err := urlID(r, "pickupId")
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	var req models.StatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	pickup, err := h.service.UpdateStatus(r.Context(), id, pickupID, req.Status)
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, pickup, h.log)
}
