package models

import "time"

// ReminderOffset is how far before a session's start a reminder fires.
type ReminderOffset string

const (
	OffsetHours24 ReminderOffset = "hours_24"
	OffsetHours1  ReminderOffset = "hours_1"
)

// ReminderRecipient selects who a reminder goes to.
type ReminderRecipient string

const (
	RecipientClient ReminderRecipient = "client"
	RecipientTeam   ReminderRecipient = "team"
	RecipientBoth   ReminderRecipient = "both"
)

// ReminderSpec is a single reminder rule attached to a booking. Specs are
// never mutated after creation; re-scheduling supersedes the old set.
// Channel is a transport-agnostic tag ("email", "sms"); delivery lives
// outside the scheduling engine.
type ReminderSpec struct {
	Offset    ReminderOffset    `bson:"offset" json:"offset"`
	Channel   string            `bson:"channel" json:"channel"`
	Recipient ReminderRecipient `bson:"recipient" json:"recipient"`
}

// ScheduledReminder is a reminder spec resolved to a concrete fire time.
// FireImmediately marks reminders whose fire time was already past at
// schedule time; they are kept rather than dropped so a same-day booking
// still gets its reminder. Suppressed reminders belong to cancelled
// bookings and must not be delivered.
type ScheduledReminder struct {
	ID              string            `bson:"id" json:"id"`
	OrgID           string            `bson:"org_id" json:"org_id"`
	BookingID       string            `bson:"booking_id" json:"booking_id"`
	FireAt          time.Time         `bson:"fire_at" json:"fire_at"`
	Offset          ReminderOffset    `bson:"offset" json:"offset"`
	Channel         string            `bson:"channel" json:"channel"`
	Recipient       ReminderRecipient `bson:"recipient" json:"recipient"`
	FireImmediately bool              `bson:"fire_immediately" json:"fire_immediately"`
	Suppressed      bool              `bson:"suppressed" json:"suppressed"`
	SuppressedAt    *time.Time        `bson:"suppressed_at,omitempty" json:"suppressed_at,omitempty"`
	SentAt          *time.Time        `bson:"sent_at,omitempty" json:"sent_at,omitempty"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
}

// Spec returns the rule this reminder was scheduled from.
func (r *ScheduledReminder) Spec() ReminderSpec {
	return ReminderSpec{Offset: r.Offset, Channel: r.Channel, Recipient: r.Recipient}
}
