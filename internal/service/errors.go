package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mealshare/backend/internal/auth"
	"github.com/mealshare/backend/internal/models"
	"github.com/mealshare/backend/internal/repository"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("not permitted for this user")
)

var validate = newValidator()

// newValidator reports field errors under their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs struct tag validation and wraps failures in ErrValidation
func validateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return fe.Field() + " is required"
	case "gtfield":
		return fe.Field() + " must be after " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "gt", "gte", "lte", "max", "min":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}

// ownedRestaurant loads a restaurant and checks the caller owns it
func ownedRestaurant(ctx context.Context, repo repository.RestaurantRepository, id auth.Identity, restaurantID uuid.UUID) (*models.Restaurant, error) {
	r, err := repo.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r.OwnerID != id.UserID {
		return nil, ErrForbidden
	}
	return r, nil
}
