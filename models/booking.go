package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known lifecycle states.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Booking represents a single scheduled session. Bookings that belong to
// a recurring series share a SeriesID; standalone bookings leave it empty.
// Cancelled bookings are soft-terminal: they keep their record and are
// never physically deleted by the engine.
type Booking struct {
	ID               string          `bson:"id" json:"id"`
	OrgID            string          `bson:"org_id" json:"org_id"`
	Title            string          `bson:"title" json:"title"`
	StartTime        time.Time       `bson:"start_time" json:"start_time"`
	EndTime          time.Time       `bson:"end_time" json:"end_time"`
	Status           BookingStatus   `bson:"status" json:"status"`
	Location         string          `bson:"location,omitempty" json:"location,omitempty"`
	Coordinates      *Coordinates    `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	ClientID         string          `bson:"client_id,omitempty" json:"client_id,omitempty"`
	ServiceID        string          `bson:"service_id,omitempty" json:"service_id,omitempty"`
	AssignedMemberID string          `bson:"assigned_member_id,omitempty" json:"assigned_member_id,omitempty"`
	SeriesID         string          `bson:"series_id,omitempty" json:"series_id,omitempty"`
	OccurrenceIndex  int             `bson:"occurrence_index" json:"occurrence_index"`
	Travel           *TravelEstimate `bson:"travel,omitempty" json:"travel,omitempty"`
	CreatedAt        time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `bson:"updated_at" json:"updated_at"`
}

// Window returns the booking's occupied time window.
func (b *Booking) Window() TimeWindow {
	return TimeWindow{Start: b.StartTime, End: b.EndTime}
}
