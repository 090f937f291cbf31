package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"studioflow/config"
	bookingRepo "studioflow/database/repository/booking"
	"studioflow/models"
	"studioflow/services/notification"
	"studioflow/services/scheduling"
	"studioflow/services/tasks"
	"studioflow/utils"
)

// sweepBatchSize bounds how many overdue reminders one sweep re-enqueues.
const sweepBatchSize = 200

// InitReminderWorker runs the asynq worker that turns queued reminder
// tasks into delivery requests. The worker re-reads the reminder row
// before delivering, so reminders suppressed after enqueue are dropped
// here rather than sent.
func InitReminderWorker(notifier notification.Notifier, repo *bookingRepo.MongoBookingRepo) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: config.AppConfig.ReminderConcurrency,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeDispatchReminder, handleReminderTask(notifier, repo))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed: %v", attempt, maxAttempts, err)
				if attempt == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempt*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(notifier notification.Notifier, repo *bookingRepo.MongoBookingRepo) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.ReminderTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("reminder task has invalid payload", zap.Error(err))
			return err
		}

		rem, err := repo.GetReminderByID(ctx, p.ReminderID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				logger.Warn("reminder row gone, dropping task", zap.String("reminderID", p.ReminderID))
				return nil
			}
			return err
		}
		if rem.Suppressed || rem.SentAt != nil {
			return nil
		}

		booking, err := repo.GetByID(ctx, p.OrgID, p.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrNotFound) {
				logger.Warn("booking gone, dropping reminder", zap.String("bookingID", p.BookingID))
				return nil
			}
			return err
		}
		if booking.Status == models.StatusCancelled {
			return nil
		}

		req := notification.ReminderRequest{
			ReminderID: rem.ID,
			OrgID:      rem.OrgID,
			Booking:    *booking,
			Channel:    rem.Channel,
			Recipient:  rem.Recipient,
		}
		if err := notifier.Deliver(ctx, req); err != nil {
			logger.Error("reminder delivery hand-off failed",
				zap.String("reminderID", rem.ID), zap.Error(err))
			return err
		}
		return repo.MarkSent(ctx, rem.ID, time.Now())
	}
}

// StartReminderSweep runs a periodic fallback: any reminder past its
// fire time that was never handed to the queue (a Redis outage at
// booking time) gets re-enqueued. Task IDs make re-enqueueing
// idempotent.
func StartReminderSweep(dispatcher scheduling.ReminderDispatcher, repo *bookingRepo.MongoBookingRepo) *cron.Cron {
	c := cron.New()
	logger := utils.GetLogger()

	_, err := c.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		due, err := repo.ListDueUnsent(ctx, time.Now(), sweepBatchSize)
		if err != nil {
			logger.Error("reminder sweep query failed", zap.Error(err))
			return
		}
		for _, rem := range due {
			rem.FireImmediately = true
			if err := dispatcher.Enqueue(ctx, rem); err != nil {
				logger.Warn("reminder sweep enqueue failed",
					zap.String("reminderID", rem.ID), zap.Error(err))
			}
		}
		if len(due) > 0 {
			logger.Info("reminder sweep re-enqueued overdue reminders", zap.Int("count", len(due)))
		}
	})
	if err != nil {
		logger.Fatal("failed to register reminder sweep", zap.Error(err))
	}

	c.Start()
	return c
}
