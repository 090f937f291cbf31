package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"studioflow/models"
)

type stubBlockSource struct {
	blocks []models.AvailabilityBlock
	err    error
}

func (s *stubBlockSource) FindConflicting(_ context.Context, _ models.ConflictScope, _ models.TimeWindow) ([]models.AvailabilityBlock, error) {
	return s.blocks, s.err
}

func window(t *testing.T, startHour, endHour int) models.TimeWindow {
	t.Helper()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	return models.TimeWindow{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func bookingBlock(id string, w models.TimeWindow, status models.BookingStatus) models.AvailabilityBlock {
	return models.AvailabilityBlock{ID: id, Kind: models.BlockKindBooking, Window: w, BookingStatus: status}
}

func TestCheckBackToBackWindowsDoNotConflict(t *testing.T) {
	source := &stubBlockSource{blocks: []models.AvailabilityBlock{
		bookingBlock("b1", window(t, 10, 11), models.StatusConfirmed),
	}}
	checker := &AvailabilityChecker{Source: source}

	conflict, err := checker.Check(context.Background(), models.ConflictScope{OrgID: "org1"}, window(t, 11, 12), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != nil {
		t.Errorf("back-to-back windows reported as conflict: %v", conflict)
	}
}

func TestCheckOverlapConflicts(t *testing.T) {
	existing := window(t, 10, 11)
	source := &stubBlockSource{blocks: []models.AvailabilityBlock{
		bookingBlock("b1", existing, models.StatusConfirmed),
	}}
	checker := &AvailabilityChecker{Source: source}

	proposed := models.TimeWindow{Start: existing.Start.Add(30 * time.Minute), End: existing.End.Add(30 * time.Minute)}
	conflict, err := checker.Check(context.Background(), models.ConflictScope{OrgID: "org1"}, proposed, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict == nil {
		t.Fatal("partial overlap not reported as conflict")
	}
	if conflict.ConflictingID != "b1" {
		t.Errorf("conflict names %s, want b1", conflict.ConflictingID)
	}
	if conflict.Kind != models.BlockKindBooking {
		t.Errorf("conflict kind = %s, want booking", conflict.Kind)
	}
}

func TestCheckExcludesOwnBooking(t *testing.T) {
	source := &stubBlockSource{blocks: []models.AvailabilityBlock{
		bookingBlock("b1", window(t, 10, 11), models.StatusConfirmed),
	}}
	checker := &AvailabilityChecker{Source: source}

	// A reschedule checks a new window against everything but itself.
	conflict, err := checker.Check(context.Background(), models.ConflictScope{OrgID: "org1"}, window(t, 10, 12), "b1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != nil {
		t.Errorf("excluded booking still reported as conflict: %v", conflict)
	}
}

func TestCheckIgnoresCancelledBookings(t *testing.T) {
	source := &stubBlockSource{blocks: []models.AvailabilityBlock{
		bookingBlock("b1", window(t, 10, 11), models.StatusCancelled),
	}}
	checker := &AvailabilityChecker{Source: source}

	conflict, err := checker.Check(context.Background(), models.ConflictScope{OrgID: "org1"}, window(t, 10, 11), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != nil {
		t.Errorf("cancelled booking blocked the window: %v", conflict)
	}
}

func TestCheckTimeOffBlocks(t *testing.T) {
	approved := models.AvailabilityBlock{
		ID: "t1", Kind: models.BlockKindTimeOff, Window: window(t, 9, 17), Approved: true,
	}
	pending := models.AvailabilityBlock{
		ID: "t2", Kind: models.BlockKindTimeOff, Window: window(t, 9, 17), Approved: false,
	}

	checker := &AvailabilityChecker{Source: &stubBlockSource{blocks: []models.AvailabilityBlock{pending}}}
	conflict, err := checker.Check(context.Background(), models.ConflictScope{OrgID: "org1"}, window(t, 10, 11), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict != nil {
		t.Errorf("unapproved time-off blocked the window: %v", conflict)
	}

	checker = &AvailabilityChecker{Source: &stubBlockSource{blocks: []models.AvailabilityBlock{approved}}}
	conflict, err = checker.Check(context.Background(), models.ConflictScope{OrgID: "org1"}, window(t, 10, 11), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict == nil {
		t.Fatal("approved time-off did not block the window")
	}
	if conflict.Kind != models.BlockKindTimeOff {
		t.Errorf("conflict kind = %s, want time_off", conflict.Kind)
	}
}

func TestCheckBookingsWinOverTimeOff(t *testing.T) {
	source := &stubBlockSource{blocks: []models.AvailabilityBlock{
		{ID: "t1", Kind: models.BlockKindHoliday, Window: window(t, 9, 17), Approved: true},
		bookingBlock("b1", window(t, 10, 11), models.StatusConfirmed),
	}}
	checker := &AvailabilityChecker{Source: source}

	conflict, err := checker.Check(context.Background(), models.ConflictScope{OrgID: "org1"}, window(t, 10, 11), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict == nil || conflict.ConflictingID != "b1" {
		t.Errorf("expected the booking conflict to be reported first, got %v", conflict)
	}
}

func TestCheckInvalidWindow(t *testing.T) {
	checker := &AvailabilityChecker{Source: &stubBlockSource{}}
	w := window(t, 11, 10)

	_, err := checker.Check(context.Background(), models.ConflictScope{OrgID: "org1"}, w, "")
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error for inverted window, got %v", err)
	}
}

func TestCheckWrapsStoreFailure(t *testing.T) {
	checker := &AvailabilityChecker{Source: &stubBlockSource{err: errors.New("connection reset")}}

	_, err := checker.Check(context.Background(), models.ConflictScope{OrgID: "org1"}, window(t, 10, 11), "")
	var iErr *InfrastructureError
	if !errors.As(err, &iErr) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}
