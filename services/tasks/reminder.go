package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hibiken/asynq"

	"studioflow/models"
)

const TypeDispatchReminder = "reminder:dispatch"

// ReminderTaskPayload is what travels through the queue: just enough to
// re-read the reminder row and address the delivery request.
type ReminderTaskPayload struct {
	ReminderID string `json:"reminderId"`
	BookingID  string `json:"bookingId"`
	OrgID      string `json:"orgId"`
	Channel    string `json:"channel"`
	Recipient  string `json:"recipient"`
	FireAt     string `json:"fireAt"`
}

// NewReminderTask builds the asynq task for one scheduled reminder,
// processed at its fire time. Past-due (FireImmediately) reminders are
// processed right away.
func NewReminderTask(rem models.ScheduledReminder) (*asynq.Task, []asynq.Option, error) {
	payload := ReminderTaskPayload{
		ReminderID: rem.ID,
		BookingID:  rem.BookingID,
		OrgID:      rem.OrgID,
		Channel:    rem.Channel,
		Recipient:  string(rem.Recipient),
		FireAt:     rem.FireAt.Format(time.RFC3339),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	task := asynq.NewTask(TypeDispatchReminder, b)
	opts := []asynq.Option{asynq.TaskID(rem.ID)}
	if !rem.FireImmediately {
		opts = append(opts, asynq.ProcessAt(rem.FireAt))
	}
	return task, opts, nil
}

// AsynqDispatcher implements the engine's ReminderDispatcher on an
// asynq client. Duplicate enqueues of the same reminder collapse on the
// task ID, which keeps the periodic sweep idempotent.
type AsynqDispatcher struct {
	Client *asynq.Client
}

func (d *AsynqDispatcher) Enqueue(ctx context.Context, rem models.ScheduledReminder) error {
	task, opts, err := NewReminderTask(rem)
	if err != nil {
		return err
	}
	_, err = d.Client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}
