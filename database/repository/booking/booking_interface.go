package bookingRepo

import (
	"context"
	"errors"
	"time"

	"studioflow/models"
)

// ErrNotFound is returned when a lookup matches no record in the org
// scope.
var ErrNotFound = errors.New("record not found")

// BookingRepository is the engine's abstract booking store. The engine
// never caches booking state across calls; the store is the only shared
// mutable resource.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, orgID, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, orgID, id string, status models.BookingStatus, at time.Time) error
	ListBySeries(ctx context.Context, orgID, seriesID string) ([]models.Booking, error)

	// FindConflicting returns every busy interval in scope that might
	// overlap the window: bookings for the scoped member plus time-off
	// blocks. The availability checker applies the overlap and status
	// filtering; the store only narrows the candidate set.
	FindConflicting(ctx context.Context, scope models.ConflictScope, window models.TimeWindow) ([]models.AvailabilityBlock, error)
}

// ReminderRepository persists scheduled reminders. Rows are the source
// of truth for the dispatch queue; the sweep re-enqueues anything due
// that was never handed off.
type ReminderRepository interface {
	CreateBatch(ctx context.Context, reminders []models.ScheduledReminder) error
	GetReminderByID(ctx context.Context, id string) (*models.ScheduledReminder, error)

	// SuppressPending marks the booking's unsent, unsuppressed reminders
	// as suppressed and reports how many it touched. Already-fired
	// reminders are never retracted.
	SuppressPending(ctx context.Context, bookingID string, at time.Time) (int64, error)

	MarkSent(ctx context.Context, id string, at time.Time) error
	ListDueUnsent(ctx context.Context, before time.Time, limit int64) ([]models.ScheduledReminder, error)
}
