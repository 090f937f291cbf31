package scheduling

import "studioflow/models"

// allowedTransitions is the full lifecycle table. Completed and
// cancelled are terminal; nothing leaves them.
var allowedTransitions = map[models.BookingStatus]map[models.BookingStatus]bool{
	models.StatusPending: {
		models.StatusConfirmed: true,
		models.StatusCancelled: true,
	},
	models.StatusConfirmed: {
		models.StatusCompleted: true,
		models.StatusCancelled: true,
	},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
}

// InitialStatus is the state every new booking starts in.
func InitialStatus() models.BookingStatus {
	return models.StatusPending
}

// CanTransition reports whether the lifecycle allows moving from one
// status to the other.
func CanTransition(from, to models.BookingStatus) bool {
	return allowedTransitions[from][to]
}

// Transition applies a lifecycle move to the booking, or returns an
// InvalidTransitionError carrying both states. It never coerces: a
// disallowed move leaves the booking untouched.
func Transition(b *models.Booking, to models.BookingStatus) error {
	if !to.Valid() {
		return newValidationError("status", "unknown status %q", to)
	}
	if !CanTransition(b.Status, to) {
		return &InvalidTransitionError{From: b.Status, To: to}
	}
	b.Status = to
	return nil
}
