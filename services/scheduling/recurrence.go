package scheduling

import (
	"time"

	"github.com/teambition/rrule-go"

	"studioflow/models"
)

// maxSeriesOccurrences is the hard safety cap on expansion. A spec that
// would produce more occurrences is rejected as a validation error, never
// silently truncated.
const maxSeriesOccurrences = 366

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// ValidateRecurrenceSpec checks a spec before any expansion or write.
func ValidateRecurrenceSpec(spec models.RecurrenceSpec) error {
	switch spec.Pattern {
	case models.PatternDaily, models.PatternWeekly, models.PatternBiweekly, models.PatternMonthly:
		if spec.Interval < 0 {
			return newValidationError("interval", "must be a positive integer, got %d", spec.Interval)
		}
	case models.PatternCustom:
		if len(spec.DaysOfWeek) == 0 {
			return newValidationError("days_of_week", "custom pattern requires at least one day of week")
		}
		for _, d := range spec.DaysOfWeek {
			if d < time.Sunday || d > time.Saturday {
				return newValidationError("days_of_week", "unknown weekday %d", d)
			}
		}
	default:
		return newValidationError("pattern", "unknown recurrence pattern %q", spec.Pattern)
	}

	hasCount := spec.AfterCount > 0
	hasUntil := spec.UntilDate != nil
	if hasCount == hasUntil {
		return newValidationError("end_condition", "exactly one of after_count or until_date must be set")
	}
	if hasCount {
		if spec.AfterCount < 2 {
			return newValidationError("after_count", "must be at least 2, got %d", spec.AfterCount)
		}
		if spec.AfterCount > maxSeriesOccurrences {
			return newValidationError("after_count", "exceeds the %d occurrence cap", maxSeriesOccurrences)
		}
	}
	return nil
}

// ExpandRecurrence turns a recurrence spec into the ordered, strictly
// increasing sequence of occurrence windows, each of the given duration.
//
// Daily, weekly, biweekly and custom patterns expand through RFC 5545
// rules. Monthly is stepped by hand because the RFC skips months shorter
// than the anchor day while this engine clamps to the last day of the
// month instead (Jan 31 + 1 month = Feb 28/29, not Mar 3).
//
// An until_date spec that yields zero occurrences is a validation error,
// not an empty series; so is any expansion past the occurrence cap.
func ExpandRecurrence(spec models.RecurrenceSpec, firstStart time.Time, duration time.Duration) ([]models.TimeWindow, error) {
	if err := ValidateRecurrenceSpec(spec); err != nil {
		return nil, err
	}
	if duration <= 0 {
		return nil, newValidationError("duration", "must be positive, got %s", duration)
	}
	if spec.UntilDate != nil && spec.UntilDate.Before(firstStart) {
		return nil, newValidationError("until_date", "ends before the first occurrence starts")
	}

	var starts []time.Time
	var err error
	if spec.Pattern == models.PatternMonthly {
		starts, err = expandMonthly(spec, firstStart)
	} else {
		starts, err = expandRule(spec, firstStart)
	}
	if err != nil {
		return nil, err
	}
	if len(starts) == 0 {
		return nil, newValidationError("end_condition", "recurrence yields no occurrences")
	}

	windows := make([]models.TimeWindow, 0, len(starts))
	for _, s := range starts {
		windows = append(windows, models.TimeWindow{Start: s, End: s.Add(duration)})
	}
	return windows, nil
}

// expandRule covers the patterns rrule expresses directly.
func expandRule(spec models.RecurrenceSpec, firstStart time.Time) ([]time.Time, error) {
	opt := rrule.ROption{Dtstart: firstStart}

	switch spec.Pattern {
	case models.PatternDaily:
		opt.Freq = rrule.DAILY
		opt.Interval = intervalOrDefault(spec.Interval)
	case models.PatternWeekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = intervalOrDefault(spec.Interval)
	case models.PatternBiweekly:
		// Always every two weeks; a user-supplied interval is ignored.
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2
	case models.PatternCustom:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 1
		for _, d := range spec.DaysOfWeek {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
		}
	}

	if spec.AfterCount > 0 {
		opt.Count = spec.AfterCount
	} else {
		// UNTIL is inclusive: an occurrence landing exactly on it is kept.
		opt.Until = *spec.UntilDate
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, newValidationError("pattern", "cannot build recurrence rule: %v", err)
	}

	var starts []time.Time
	next := rule.Iterator()
	for {
		t, ok := next()
		if !ok {
			break
		}
		if len(starts) == maxSeriesOccurrences {
			return nil, newValidationError("end_condition", "expansion exceeds the %d occurrence cap", maxSeriesOccurrences)
		}
		starts = append(starts, t)
	}
	return starts, nil
}

// expandMonthly steps whole months from the first start, clamping the
// anchor day-of-month into months that are too short.
func expandMonthly(spec models.RecurrenceSpec, firstStart time.Time) ([]time.Time, error) {
	interval := intervalOrDefault(spec.Interval)
	anchorDay := firstStart.Day()

	var starts []time.Time
	for k := 0; ; k++ {
		if spec.AfterCount > 0 && len(starts) == spec.AfterCount {
			break
		}
		t := monthlyStart(firstStart, k*interval, anchorDay)
		if spec.UntilDate != nil && t.After(*spec.UntilDate) {
			break
		}
		if len(starts) == maxSeriesOccurrences {
			return nil, newValidationError("end_condition", "expansion exceeds the %d occurrence cap", maxSeriesOccurrences)
		}
		starts = append(starts, t)
	}
	return starts, nil
}

// monthlyStart returns firstStart shifted by the given number of months,
// keeping the clock time and clamping anchorDay to the target month's
// length. Stepping from the first of the month avoids AddDate rollover.
func monthlyStart(firstStart time.Time, months, anchorDay int) time.Time {
	monthFirst := time.Date(firstStart.Year(), firstStart.Month(), 1,
		firstStart.Hour(), firstStart.Minute(), firstStart.Second(), firstStart.Nanosecond(), firstStart.Location())
	target := monthFirst.AddDate(0, months, 0)

	day := anchorDay
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		target.Hour(), target.Minute(), target.Second(), target.Nanosecond(), target.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func intervalOrDefault(interval int) int {
	if interval < 1 {
		return 1
	}
	return interval
}
