package scheduling

import (
	"errors"
	"testing"

	"studioflow/models"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    models.BookingStatus
		to      models.BookingStatus
		allowed bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusPending, models.StatusPending, false},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusPending, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCompleted, models.StatusConfirmed, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusCancelled, models.StatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestTransitionAppliesAllowedMove(t *testing.T) {
	b := &models.Booking{Status: models.StatusPending}
	if err := Transition(b, models.StatusConfirmed); err != nil {
		t.Fatalf("pending -> confirmed failed: %v", err)
	}
	if b.Status != models.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", b.Status)
	}
}

func TestTransitionRejectsDisallowedMove(t *testing.T) {
	b := &models.Booking{Status: models.StatusPending}
	err := Transition(b, models.StatusCompleted)

	var tErr *InvalidTransitionError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if tErr.From != models.StatusPending || tErr.To != models.StatusCompleted {
		t.Errorf("error carries %s -> %s, want pending -> completed", tErr.From, tErr.To)
	}
	if b.Status != models.StatusPending {
		t.Errorf("booking mutated on rejected transition: %s", b.Status)
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	b := &models.Booking{Status: models.StatusPending}
	err := Transition(b, "archived")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for unknown status, got %v", err)
	}
}

func TestTerminalStates(t *testing.T) {
	if !models.StatusCompleted.Terminal() || !models.StatusCancelled.Terminal() {
		t.Error("completed and cancelled should be terminal")
	}
	if models.StatusPending.Terminal() || models.StatusConfirmed.Terminal() {
		t.Error("pending and confirmed should not be terminal")
	}
	if InitialStatus() != models.StatusPending {
		t.Errorf("initial status = %s, want pending", InitialStatus())
	}
}
