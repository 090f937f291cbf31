package scheduling

import (
	"errors"
	"testing"
	"time"

	"studioflow/models"
)

func mustExpand(t *testing.T, spec models.RecurrenceSpec, firstStart time.Time, duration time.Duration) []models.TimeWindow {
	t.Helper()
	windows, err := ExpandRecurrence(spec, firstStart, duration)
	if err != nil {
		t.Fatalf("ExpandRecurrence returned error: %v", err)
	}
	return windows
}

func TestExpandWeeklyAfterCount(t *testing.T) {
	first := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC) // a Monday
	spec := models.RecurrenceSpec{Pattern: models.PatternWeekly, AfterCount: 4}

	windows := mustExpand(t, spec, first, time.Hour)
	if len(windows) != 4 {
		t.Fatalf("expected 4 occurrences, got %d", len(windows))
	}
	for i, w := range windows {
		want := first.AddDate(0, 0, 7*i)
		if !w.Start.Equal(want) {
			t.Errorf("occurrence %d starts at %v, want %v", i, w.Start, want)
		}
		if !w.End.Equal(w.Start.Add(time.Hour)) {
			t.Errorf("occurrence %d has duration %v, want 1h", i, w.Duration())
		}
	}
	for i := 1; i < len(windows); i++ {
		if !windows[i].Start.After(windows[i-1].Start) {
			t.Errorf("occurrences not strictly increasing at index %d", i)
		}
	}
}

func TestExpandDailyWithInterval(t *testing.T) {
	first := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	spec := models.RecurrenceSpec{Pattern: models.PatternDaily, Interval: 3, AfterCount: 3}

	windows := mustExpand(t, spec, first, 30*time.Minute)
	want := []time.Time{first, first.AddDate(0, 0, 3), first.AddDate(0, 0, 6)}
	if len(windows) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(windows))
	}
	for i := range want {
		if !windows[i].Start.Equal(want[i]) {
			t.Errorf("occurrence %d starts at %v, want %v", i, windows[i].Start, want[i])
		}
	}
}

func TestExpandBiweeklyIgnoresInterval(t *testing.T) {
	first := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	spec := models.RecurrenceSpec{Pattern: models.PatternBiweekly, Interval: 5, AfterCount: 3}

	windows := mustExpand(t, spec, first, time.Hour)
	for i, w := range windows {
		want := first.AddDate(0, 0, 14*i)
		if !w.Start.Equal(want) {
			t.Errorf("occurrence %d starts at %v, want %v (every two weeks)", i, w.Start, want)
		}
	}
}

func TestExpandMonthlyClampsShortMonths(t *testing.T) {
	// Jan 31 anchors at day 31; February clamps to its last day.
	first := time.Date(2026, time.January, 31, 14, 0, 0, 0, time.UTC)
	spec := models.RecurrenceSpec{Pattern: models.PatternMonthly, AfterCount: 4}

	windows := mustExpand(t, spec, first, time.Hour)
	want := []time.Time{
		time.Date(2026, time.January, 31, 14, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 14, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 31, 14, 0, 0, 0, time.UTC),
		time.Date(2026, time.April, 30, 14, 0, 0, 0, time.UTC),
	}
	if len(windows) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(windows))
	}
	for i := range want {
		if !windows[i].Start.Equal(want[i]) {
			t.Errorf("occurrence %d starts at %v, want %v", i, windows[i].Start, want[i])
		}
	}
}

func TestExpandMonthlyLeapFebruary(t *testing.T) {
	first := time.Date(2028, time.January, 31, 9, 0, 0, 0, time.UTC)
	spec := models.RecurrenceSpec{Pattern: models.PatternMonthly, AfterCount: 2}

	windows := mustExpand(t, spec, first, time.Hour)
	want := time.Date(2028, time.February, 29, 9, 0, 0, 0, time.UTC)
	if !windows[1].Start.Equal(want) {
		t.Errorf("leap-year February occurrence starts at %v, want %v", windows[1].Start, want)
	}
}

func TestExpandCustomSkipsNonMatchingFirstStart(t *testing.T) {
	// First start is a Tuesday; Mon/Wed/Fri pattern begins on Wednesday.
	first := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	spec := models.RecurrenceSpec{
		Pattern:    models.PatternCustom,
		DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		AfterCount: 3,
	}

	windows := mustExpand(t, spec, first, time.Hour)
	want := []time.Time{
		time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC), // Wed
		time.Date(2026, time.March, 6, 10, 0, 0, 0, time.UTC), // Fri
		time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC), // Mon
	}
	if len(windows) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(windows))
	}
	for i := range want {
		if !windows[i].Start.Equal(want[i]) {
			t.Errorf("occurrence %d starts at %v (%s), want %v (%s)",
				i, windows[i].Start, windows[i].Start.Weekday(), want[i], want[i].Weekday())
		}
	}
}

func TestExpandUntilDateInclusive(t *testing.T) {
	first := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	until := first.AddDate(0, 0, 14) // lands exactly on the third occurrence
	spec := models.RecurrenceSpec{Pattern: models.PatternWeekly, UntilDate: &until}

	windows := mustExpand(t, spec, first, time.Hour)
	if len(windows) != 3 {
		t.Fatalf("expected 3 occurrences with inclusive until, got %d", len(windows))
	}
	if !windows[2].Start.Equal(until) {
		t.Errorf("last occurrence starts at %v, want the until date %v", windows[2].Start, until)
	}
}

func TestExpandUntilBeforeFirstStart(t *testing.T) {
	first := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	until := first.AddDate(0, 0, -1)
	spec := models.RecurrenceSpec{Pattern: models.PatternWeekly, UntilDate: &until}

	_, err := ExpandRecurrence(spec, first, time.Hour)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error for until before first start, got %v", err)
	}
}

func TestExpandCustomUntilYieldsNoOccurrences(t *testing.T) {
	// Tuesday start, Friday-only pattern, until Wednesday: nothing matches.
	first := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	until := first.AddDate(0, 0, 1)
	spec := models.RecurrenceSpec{
		Pattern:    models.PatternCustom,
		DaysOfWeek: []time.Weekday{time.Friday},
		UntilDate:  &until,
	}

	_, err := ExpandRecurrence(spec, first, time.Hour)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error for zero-occurrence expansion, got %v", err)
	}
}

func TestExpandOccurrenceCap(t *testing.T) {
	first := time.Date(2026, time.January, 1, 10, 0, 0, 0, time.UTC)
	until := first.AddDate(2, 0, 0)
	spec := models.RecurrenceSpec{Pattern: models.PatternDaily, UntilDate: &until}

	_, err := ExpandRecurrence(spec, first, time.Hour)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error past the occurrence cap, got %v", err)
	}
}

func TestValidateRecurrenceSpec(t *testing.T) {
	until := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name    string
		spec    models.RecurrenceSpec
		wantErr bool
	}{
		{"weekly with count", models.RecurrenceSpec{Pattern: models.PatternWeekly, AfterCount: 4}, false},
		{"daily with until", models.RecurrenceSpec{Pattern: models.PatternDaily, UntilDate: &until}, false},
		{"unknown pattern", models.RecurrenceSpec{Pattern: "yearly", AfterCount: 4}, true},
		{"no end condition", models.RecurrenceSpec{Pattern: models.PatternWeekly}, true},
		{"both end conditions", models.RecurrenceSpec{Pattern: models.PatternWeekly, AfterCount: 4, UntilDate: &until}, true},
		{"count below two", models.RecurrenceSpec{Pattern: models.PatternWeekly, AfterCount: 1}, true},
		{"count above cap", models.RecurrenceSpec{Pattern: models.PatternDaily, AfterCount: maxSeriesOccurrences + 1}, true},
		{"custom without days", models.RecurrenceSpec{Pattern: models.PatternCustom, AfterCount: 4}, true},
		{"custom with bad day", models.RecurrenceSpec{Pattern: models.PatternCustom, DaysOfWeek: []time.Weekday{7}, AfterCount: 4}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRecurrenceSpec(tc.spec)
			if tc.wantErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestExpandRejectsNonPositiveDuration(t *testing.T) {
	first := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	spec := models.RecurrenceSpec{Pattern: models.PatternWeekly, AfterCount: 2}

	if _, err := ExpandRecurrence(spec, first, 0); err == nil {
		t.Fatal("expected error for zero duration")
	}
	if _, err := ExpandRecurrence(spec, first, -time.Hour); err == nil {
		t.Fatal("expected error for negative duration")
	}
}
