package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/service"
)

// FoodItemHandler handles food item HTTP requests
type FoodItemHandler struct {
	service *service.FoodItemService
	logger  *slog.Logger
}

// NewFoodItemHandler creates a new food item handler
func NewFoodItemHandler(service *service.FoodItemService, logger *slog.Logger) *FoodItemHandler {
	return &FoodItemHandler{
		service: service,
		logger:  logger,
	}
}

// List handles GET /api/restaurants/{restaurantId}/food-items
// ?available=true restricts the result to items that can still be reserved
func (h *FoodItemHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := urlID(r, "restaurantId")
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	availableOnly, _ := strconv.ParseBool(r.URL.Query().Get("available"))

	items, err := h.service.ListForRestaurant(r.Context(), restaurantID, availableOnly)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

// Create handles POST /api/restaurants/{restaurantId}/food-items
func (h *FoodItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	restaurantID, err := urlID(r, "restaurantId")
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	var req models.FoodItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), id, restaurantID, req)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, item, h.logger)
}

// Update handles PUT /api/food-items/{foodItemId}
func (h *FoodItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	foodItemID, err := urlID(r, "foodItemId")
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	var req models.FoodItemUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), id, foodItemID, req)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// Delete handles DELETE /api/food-items/{foodItemId}
func (h *FoodItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	foodItemID, err := urlID(r, "foodItemId")
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id, foodItemID); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
