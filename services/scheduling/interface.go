package scheduling

import (
	"context"
	"time"

	bookingRepo "studioflow/database/repository/booking"
	"studioflow/models"
)

// CreateBookingInput is a creation request for a single session or, with
// a recurrence spec, the first occurrence of a series. OrgID is the
// explicit tenant scope; every engine operation takes it rather than
// reading ambient state.
type CreateBookingInput struct {
	OrgID            string                `json:"org_id"`
	Title            string                `json:"title"`
	StartTime        time.Time             `json:"start_time"`
	EndTime          time.Time             `json:"end_time"`
	Location         string                `json:"location,omitempty"`
	Coordinates      *models.Coordinates   `json:"coordinates,omitempty"`
	ClientID         string                `json:"client_id,omitempty"`
	ServiceID        string                `json:"service_id,omitempty"`
	AssignedMemberID string                `json:"assigned_member_id,omitempty"`
	Reminders        []models.ReminderSpec `json:"reminders,omitempty"`
}

// SkippedOccurrence records one series occurrence that could not be
// created, with the window that conflicted and why.
type SkippedOccurrence struct {
	Window models.TimeWindow `json:"window"`
	Reason string            `json:"reason"`
}

// SeriesResult is the partial-success summary of series creation:
// occurrences that conflicted are skipped with a reason while the rest
// of the series is still created.
type SeriesResult struct {
	SeriesID string              `json:"series_id"`
	Created  []*models.Booking   `json:"created"`
	Skipped  []SkippedOccurrence `json:"skipped"`
}

// Locker serializes check-and-reserve for one scope key. Concurrent
// series creation for the same assigned member must not interleave its
// availability read with another request's write; the production
// implementation is a Redis lock shared across processes.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// ReminderDispatcher hands a scheduled reminder to the delivery queue.
// The engine only emits reminder requests; transports live behind the
// queue worker.
type ReminderDispatcher interface {
	Enqueue(ctx context.Context, rem models.ScheduledReminder) error
}

// SchedulingService is the engine's service boundary: the four core
// operations plus the stateless availability and travel probes the
// booking form calls before committing.
type SchedulingService interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error)
	CreateRecurringSeries(ctx context.Context, input CreateBookingInput, spec models.RecurrenceSpec) (*SeriesResult, error)
	TransitionStatus(ctx context.Context, orgID, bookingID string, next models.BookingStatus) (*models.Booking, error)
	ScheduleReminders(ctx context.Context, orgID, bookingID string, specs []models.ReminderSpec) ([]models.ScheduledReminder, error)
	CheckWindow(ctx context.Context, orgID, memberID string, window models.TimeWindow, excludeBookingID string) (*ConflictError, error)
	EstimateTravel(ctx context.Context, destination models.Coordinates) *models.TravelEstimate
}

// DefaultSchedulingEngine implements SchedulingService on top of the
// abstract store, the Redis locker and the asynq reminder queue.
type DefaultSchedulingEngine struct {
	Bookings  bookingRepo.BookingRepository
	Reminders bookingRepo.ReminderRepository
	Checker   *AvailabilityChecker
	Travel    *TravelEstimator
	Locks     Locker
	Dispatch  ReminderDispatcher

	// HomeBase is the studio's configured origin; nil means travel
	// estimates degrade to none.
	HomeBase *models.Coordinates
	Fees     models.TravelFeeConfig

	// Now is swappable for tests; zero value means time.Now.
	Now func() time.Time
}
