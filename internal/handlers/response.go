package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mealshare/backend/internal/auth"
	"github.com/mealshare/backend/internal/pickup"
	"github.com/mealshare/backend/internal/repository"
	"github.com/mealshare/backend/internal/service"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 1 << 20

var errInvalidID = errors.New("invalid id")

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// WriteServiceError maps service and repository errors to HTTP status codes
func WriteServiceError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, errInvalidID):
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", logger)
	case errors.Is(err, service.ErrValidation):
		WriteError(w, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, http.StatusForbidden, "Forbidden", logger)
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Not found", logger)
	case errors.Is(err, repository.ErrFoodItemUnavailable):
		WriteError(w, http.StatusConflict, "Food item is no longer available", logger)
	case errors.Is(err, pickup.ErrInvalidTransition), errors.Is(err, pickup.ErrUnknownStatus):
		WriteError(w, http.StatusConflict, err.Error(), logger)
	case errors.Is(err, repository.ErrStatusConflict):
		WriteError(w, http.StatusConflict, "Pickup status changed, reload and try again", logger)
	case errors.Is(err, repository.ErrDuplicate):
		WriteError(w, http.StatusConflict, "You already have a registered restaurant", logger)
	default:
		logger.Error("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}

// urlID parses a UUID path parameter
func urlID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", errInvalidID, name)
	}
	return id, nil
}

// decodeJSON reads a single JSON object from the request body
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", service.ErrValidation, err)
	}
	return nil
}

// callerIdentity returns the identity set by the auth middleware, answering
// 401 itself when there is none
func callerIdentity(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (auth.Identity, bool) {
	id, err := auth.FromContext(r.Context())
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Unauthorized", logger)
		return auth.Identity{}, false
	}
	return id, true
}
