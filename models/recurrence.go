package models

import "time"

// RecurrencePattern names how a series repeats.
type RecurrencePattern string

const (
	PatternDaily    RecurrencePattern = "daily"
	PatternWeekly   RecurrencePattern = "weekly"
	PatternBiweekly RecurrencePattern = "biweekly"
	PatternMonthly  RecurrencePattern = "monthly"
	PatternCustom   RecurrencePattern = "custom"
)

// RecurrenceSpec describes how a recurring series expands into concrete
// occurrences. Exactly one end condition must be set: AfterCount > 0 or
// UntilDate non-nil.
//
// Interval applies to daily, weekly and monthly patterns. Biweekly always
// repeats every two weeks regardless of Interval. DaysOfWeek only applies
// to the custom pattern, where it must be non-empty; days use Go's
// time.Weekday numbering (Sunday = 0).
type RecurrenceSpec struct {
	Pattern    RecurrencePattern `bson:"pattern" json:"pattern"`
	Interval   int               `bson:"interval,omitempty" json:"interval,omitempty"`
	DaysOfWeek []time.Weekday    `bson:"days_of_week,omitempty" json:"days_of_week,omitempty"`
	AfterCount int               `bson:"after_count,omitempty" json:"after_count,omitempty"`
	UntilDate  *time.Time        `bson:"until_date,omitempty" json:"until_date,omitempty"`
}
