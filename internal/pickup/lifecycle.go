// Package pickup defines the pickup reservation state machine.
//
//	scheduled ──> in-progress ──> completed
//	    │              │
//	    └──────────────┴────────> cancelled
//
// completed and cancelled are terminal.
package pickup

import (
	"errors"
	"fmt"

	"github.com/mealshare/backend/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid pickup status transition")
	ErrUnknownStatus     = errors.New("unknown pickup status")
)

// InitialStatus is the status every new reservation starts in
const InitialStatus = models.PickupStatusScheduled

var transitions = map[models.PickupStatus][]models.PickupStatus{
	models.PickupStatusScheduled:  {models.PickupStatusInProgress, models.PickupStatusCancelled},
	models.PickupStatusInProgress: {models.PickupStatusCompleted, models.PickupStatusCancelled},
}

// CanTransition reports whether a pickup may move from one status to another
func CanTransition(from, to models.PickupStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrUnknownStatus for a status outside the known
// set and ErrInvalidTransition for a move the state machine does not allow.
func ValidateTransition(from, to models.PickupStatus) error {
	if !from.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, from)
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible from s
func IsTerminal(s models.PickupStatus) bool {
	return s.Valid() && len(transitions[s]) == 0
}
