package scheduling

import (
	"context"
	"fmt"

	"studioflow/models"
)

// BlockSource is the read side of the external store the availability
// checker runs against.
type BlockSource interface {
	FindConflicting(ctx context.Context, scope models.ConflictScope, window models.TimeWindow) ([]models.AvailabilityBlock, error)
}

// AvailabilityChecker decides whether a proposed window collides with
// existing bookings or approved time-off. It is a pure read: it never
// writes and never caches between calls.
type AvailabilityChecker struct {
	Source BlockSource
}

// Check returns the first conflict found for the window, or (nil, nil)
// when the window is free. Bookings in the member scope are checked
// before time-off blocks; callers that need every conflict re-query
// after resolving the first. excludeBookingID skips one booking, which
// lets a reschedule test its own replacement window.
func (c *AvailabilityChecker) Check(ctx context.Context, scope models.ConflictScope, window models.TimeWindow, excludeBookingID string) (*ConflictError, error) {
	if !window.Valid() {
		return nil, newValidationError("window", "end must be after start")
	}

	blocks, err := c.Source.FindConflicting(ctx, scope, window)
	if err != nil {
		return nil, infraErr("availability read", err)
	}

	// Bookings first, in store order.
	for _, b := range blocks {
		if b.Kind != models.BlockKindBooking {
			continue
		}
		if b.ID == excludeBookingID || b.BookingStatus == models.StatusCancelled {
			continue
		}
		if window.Overlaps(b.Window) {
			return &ConflictError{
				Reason:        fmt.Sprintf("overlaps existing booking %s", b.ID),
				Window:        window,
				ConflictingID: b.ID,
				Kind:          b.Kind,
			}, nil
		}
	}

	for _, b := range blocks {
		if b.Kind == models.BlockKindBooking || !b.Approved {
			continue
		}
		if window.Overlaps(b.Window) {
			return &ConflictError{
				Reason:        fmt.Sprintf("overlaps %s block", b.Kind),
				Window:        window,
				ConflictingID: b.ID,
				Kind:          b.Kind,
			}, nil
		}
	}

	return nil, nil
}
