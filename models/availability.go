package models

import "time"

// BlockKind classifies a busy interval.
type BlockKind string

const (
	BlockKindBooking  BlockKind = "booking"
	BlockKindTimeOff  BlockKind = "time_off"
	BlockKindHoliday  BlockKind = "holiday"
	BlockKindPersonal BlockKind = "personal"
)

// AvailabilityBlock is an opaque busy interval read by the availability
// checker: another booking, or a time-off/holiday/personal block owned
// by external collaborators. BookingStatus is only set for booking-kind
// blocks; Approved only matters for time-off kinds.
type AvailabilityBlock struct {
	ID            string        `bson:"id" json:"id"`
	Kind          BlockKind     `bson:"kind" json:"kind"`
	Window        TimeWindow    `bson:"window" json:"window"`
	MemberID      string        `bson:"member_id,omitempty" json:"member_id,omitempty"`
	BookingStatus BookingStatus `bson:"booking_status,omitempty" json:"booking_status,omitempty"`
	Approved      bool          `bson:"approved" json:"approved"`
	Label         string        `bson:"label,omitempty" json:"label,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
}

// ConflictScope bounds an availability query to one organization and,
// when set, one assigned member.
type ConflictScope struct {
	OrgID    string `json:"org_id"`
	MemberID string `json:"member_id,omitempty"`
}
