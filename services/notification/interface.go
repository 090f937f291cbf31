package notification

import (
	"context"

	"go.uber.org/zap"

	"studioflow/models"
	"studioflow/utils"
)

// ReminderRequest is the transport-agnostic delivery request the
// scheduling engine emits. Actual sending (email, SMS, push) lives in
// external collaborators behind this interface.
type ReminderRequest struct {
	ReminderID string
	OrgID      string
	Booking    models.Booking
	Channel    string
	Recipient  models.ReminderRecipient
}

// Notifier receives reminder requests from the queue worker.
type Notifier interface {
	Deliver(ctx context.Context, req ReminderRequest) error
}

// LogNotifier is the default sink: it records the request and leaves
// delivery to whatever tails the log. Useful in development and as a
// stand-in until a transport is wired.
type LogNotifier struct{}

func (LogNotifier) Deliver(_ context.Context, req ReminderRequest) error {
	utils.GetLogger().Info("reminder request",
		zap.String("reminderID", req.ReminderID),
		zap.String("orgID", req.OrgID),
		zap.String("bookingID", req.Booking.ID),
		zap.String("bookingTitle", req.Booking.Title),
		zap.String("channel", req.Channel),
		zap.String("recipient", string(req.Recipient)),
		zap.Time("startTime", req.Booking.StartTime),
	)
	return nil
}
