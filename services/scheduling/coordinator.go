package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "studioflow/database/repository/booking"
	"studioflow/models"
	"studioflow/utils"
)

// scopeLockTTL bounds how long a check-and-reserve section may hold its
// scope lock before it expires on its own.
const scopeLockTTL = 15 * time.Second

func (e *DefaultSchedulingEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// CreateBooking validates the window, reserves it against the member's
// calendar, annotates travel best-effort, persists and schedules
// reminders. Conflicts abort creation for a single booking.
func (e *DefaultSchedulingEngine) CreateBooking(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	release, err := e.reserveScope(ctx, input.OrgID, input.AssignedMemberID)
	if err != nil {
		return nil, err
	}
	defer release()

	window := models.TimeWindow{Start: input.StartTime, End: input.EndTime}
	scope := models.ConflictScope{OrgID: input.OrgID, MemberID: input.AssignedMemberID}
	conflict, err := e.Checker.Check(ctx, scope, window, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflict
	}

	b := e.newBooking(input, window, "", 0)
	e.annotateTravel(ctx, b, input.Coordinates)

	if err := e.Bookings.Create(ctx, b); err != nil {
		return nil, infraErr("booking write", err)
	}
	if _, err := e.scheduleAndDispatch(ctx, b, input.Reminders); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateRecurringSeries expands the spec once, then processes every
// occurrence window independently under one scope lock. A conflicting
// occurrence is recorded as skipped and the rest of the series still
// goes through; only store failures abort the loop.
func (e *DefaultSchedulingEngine) CreateRecurringSeries(ctx context.Context, input CreateBookingInput, spec models.RecurrenceSpec) (*SeriesResult, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}
	windows, err := ExpandRecurrence(spec, input.StartTime, input.EndTime.Sub(input.StartTime))
	if err != nil {
		return nil, err
	}

	release, err := e.reserveScope(ctx, input.OrgID, input.AssignedMemberID)
	if err != nil {
		return nil, err
	}
	defer release()

	result := &SeriesResult{
		SeriesID: uuid.New().String(),
		Created:  []*models.Booking{},
		Skipped:  []SkippedOccurrence{},
	}
	scope := models.ConflictScope{OrgID: input.OrgID, MemberID: input.AssignedMemberID}

	for i, window := range windows {
		conflict, err := e.Checker.Check(ctx, scope, window, "")
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			result.Skipped = append(result.Skipped, SkippedOccurrence{Window: window, Reason: conflict.Reason})
			continue
		}

		b := e.newBooking(input, window, result.SeriesID, i)
		e.annotateTravel(ctx, b, input.Coordinates)

		if err := e.Bookings.Create(ctx, b); err != nil {
			return nil, infraErr("series booking write", err)
		}
		if _, err := e.scheduleAndDispatch(ctx, b, input.Reminders); err != nil {
			return nil, err
		}
		result.Created = append(result.Created, b)
	}

	return result, nil
}

// TransitionStatus applies one lifecycle move and persists it. Moving to
// cancelled also suppresses the booking's not-yet-fired reminders;
// already-fired ones are never retracted. Cancelling a series member
// affects only that member.
func (e *DefaultSchedulingEngine) TransitionStatus(ctx context.Context, orgID, bookingID string, next models.BookingStatus) (*models.Booking, error) {
	b, err := e.getBooking(ctx, orgID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := Transition(b, next); err != nil {
		return nil, err
	}

	now := e.now()
	b.UpdatedAt = now
	if err := e.Bookings.UpdateStatus(ctx, orgID, bookingID, next, now); err != nil {
		return nil, infraErr("status write", err)
	}

	if next == models.StatusCancelled {
		n, err := e.Reminders.SuppressPending(ctx, bookingID, now)
		if err != nil {
			return nil, infraErr("reminder suppression", err)
		}
		if n > 0 {
			utils.GetLogger().Info("suppressed pending reminders for cancelled booking",
				zap.String("bookingID", bookingID), zap.Int64("count", n))
		}
	}
	return b, nil
}

// ScheduleReminders replaces the booking's reminder set: the old pending
// reminders are suppressed and a new set is computed from the current
// start time. Specs are never edited in place.
func (e *DefaultSchedulingEngine) ScheduleReminders(ctx context.Context, orgID, bookingID string, specs []models.ReminderSpec) ([]models.ScheduledReminder, error) {
	if err := validateReminderSpecs(specs); err != nil {
		return nil, err
	}

	b, err := e.getBooking(ctx, orgID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == models.StatusCancelled {
		return nil, newValidationError("status", "cannot schedule reminders on a cancelled booking")
	}

	if _, err := e.Reminders.SuppressPending(ctx, bookingID, e.now()); err != nil {
		return nil, infraErr("reminder supersede", err)
	}
	return e.scheduleAndDispatch(ctx, b, specs)
}

// CheckWindow is the stateless availability probe the booking form calls
// before submitting. It takes no lock; the authoritative check runs
// again inside CreateBooking.
func (e *DefaultSchedulingEngine) CheckWindow(ctx context.Context, orgID, memberID string, window models.TimeWindow, excludeBookingID string) (*ConflictError, error) {
	scope := models.ConflictScope{OrgID: orgID, MemberID: memberID}
	return e.Checker.Check(ctx, scope, window, excludeBookingID)
}

// EstimateTravel previews the travel annotation for a destination. The
// caller re-requests it whenever the destination or assigned member
// changes; estimates are never cached across such changes.
func (e *DefaultSchedulingEngine) EstimateTravel(ctx context.Context, destination models.Coordinates) *models.TravelEstimate {
	return e.Travel.Estimate(ctx, e.HomeBase, destination, e.Fees)
}

func (e *DefaultSchedulingEngine) newBooking(input CreateBookingInput, window models.TimeWindow, seriesID string, occurrenceIndex int) *models.Booking {
	now := e.now()
	return &models.Booking{
		ID:               uuid.New().String(),
		OrgID:            input.OrgID,
		Title:            input.Title,
		StartTime:        window.Start,
		EndTime:          window.End,
		Status:           InitialStatus(),
		Location:         input.Location,
		Coordinates:      input.Coordinates,
		ClientID:         input.ClientID,
		ServiceID:        input.ServiceID,
		AssignedMemberID: input.AssignedMemberID,
		SeriesID:         seriesID,
		OccurrenceIndex:  occurrenceIndex,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func (e *DefaultSchedulingEngine) annotateTravel(ctx context.Context, b *models.Booking, destination *models.Coordinates) {
	if destination == nil || e.Travel == nil {
		return
	}
	b.Travel = e.Travel.Estimate(ctx, e.HomeBase, *destination, e.Fees)
}

func (e *DefaultSchedulingEngine) getBooking(ctx context.Context, orgID, bookingID string) (*models.Booking, error) {
	b, err := e.Bookings.GetByID(ctx, orgID, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, err
		}
		return nil, infraErr("booking read", err)
	}
	return b, nil
}

// reserveScope takes the cross-process lock that makes availability
// check plus write one logical check-and-reserve. Unassigned bookings
// serialize on the organization as a whole.
func (e *DefaultSchedulingEngine) reserveScope(ctx context.Context, orgID, memberID string) (func(), error) {
	if e.Locks == nil {
		return func() {}, nil
	}
	key := "schedule:" + orgID
	if memberID != "" {
		key += ":" + memberID
	}
	release, err := e.Locks.Acquire(ctx, key, scopeLockTTL)
	if err != nil {
		return nil, infraErr("schedule lock", err)
	}
	return release, nil
}

// scheduleAndDispatch persists the computed reminders and enqueues their
// dispatch tasks. Enqueue failures are logged, not returned: the
// reminder rows are the source of truth and the periodic sweep
// re-enqueues anything the queue missed.
func (e *DefaultSchedulingEngine) scheduleAndDispatch(ctx context.Context, b *models.Booking, specs []models.ReminderSpec) ([]models.ScheduledReminder, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	reminders, err := ScheduleReminders(b, specs, e.now())
	if err != nil {
		return nil, err
	}
	if err := e.Reminders.CreateBatch(ctx, reminders); err != nil {
		return nil, infraErr("reminder write", err)
	}

	if e.Dispatch != nil {
		for _, r := range reminders {
			if err := e.Dispatch.Enqueue(ctx, r); err != nil {
				utils.GetLogger().Warn("failed to enqueue reminder, sweep will retry",
					zap.String("reminderID", r.ID), zap.Error(err))
			}
		}
	}
	return reminders, nil
}

func validateCreateInput(input CreateBookingInput) error {
	if input.OrgID == "" {
		return newValidationError("org_id", "is required")
	}
	if input.Title == "" {
		return newValidationError("title", "is required")
	}
	if !input.EndTime.After(input.StartTime) {
		return newValidationError("end_time", "must be after start_time")
	}
	return validateReminderSpecs(input.Reminders)
}
