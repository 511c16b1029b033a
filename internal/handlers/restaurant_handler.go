package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/service"
)

// RestaurantHandler handles restaurant-related HTTP requests
type RestaurantHandler struct {
	service *service.RestaurantService
	logger  *slog.Logger
}

// NewRestaurantHandler creates a new restaurant handler
func NewRestaurantHandler(service *service.RestaurantService, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		service: service,
		logger:  logger,
	}
}

// Search handles GET /api/restaurants
// Query: location, foodType, pickupTime (all|today|tomorrow), lat, lon, sort (distance)
func (h *RestaurantHandler) Search(w http.ResponseWriter, r *http.Request) {
	params, err := searchParams(r)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	listings, err := h.service.Search(r.Context(), params)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, listings, h.logger)
}

func searchParams(r *http.Request) (service.SearchParams, error) {
	q := r.URL.Query()
	params := service.SearchParams{
		Location:   q.Get("location"),
		FoodType:   q.Get("foodType"),
		PickupTime: q.Get("pickupTime"),
		SortBy:     q.Get("sort"),
	}

	switch params.PickupTime {
	case "", service.PickupTimeAll, service.PickupTimeToday, service.PickupTimeTomorrow:
	default:
		return params, fmt.Errorf("%w: pickupTime must be all, today or tomorrow", service.ErrValidation)
	}

	lat, lon := q.Get("lat"), q.Get("lon")
	if lat == "" && lon == "" {
		return params, nil
	}

	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil || latitude < -90 || latitude > 90 {
		return params, fmt.Errorf("%w: lat must be a number between -90 and 90", service.ErrValidation)
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil || longitude < -180 || longitude > 180 {
		return params, fmt.Errorf("%w: lon must be a number between -180 and 180", service.ErrValidation)
	}

	params.Latitude, params.Longitude = &latitude, &longitude
	return params, nil
}

// Get handles GET /api/restaurants/{restaurantId}
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	restaurantID, err := urlID(r, "restaurantId")
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	restaurant, err := h.service.Get(r.Context(), restaurantID)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, restaurant, h.logger)
}

// Register handles POST /api/restaurants
func (h *RestaurantHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	var req models.RestaurantRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	restaurant, err := h.service.Register(r.Context(), id, req)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, restaurant, h.logger)
}

// GetMine handles GET /api/restaurants/mine
func (h *RestaurantHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	restaurant, err := h.service.GetMine(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, restaurant, h.logger)
}

// Update handles PUT /api/restaurants/{restaurantId}
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	restaurantID, err := urlID(r, "restaurantId")
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	var req models.RestaurantRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	restaurant, err := h.service.Update(r.Context(), id, restaurantID, req)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, restaurant, h.logger)
}

// Stats handles GET /api/restaurants/{restaurantId}/stats
func (h *RestaurantHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := callerIdentity(w, r, h.logger)
	if !ok {
		return
	}

	restaurantID, err := urlID(r, "restaurantId")
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	stats, err := h.service.Stats(r.Context(), id, restaurantID)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, stats, h.logger)
}
