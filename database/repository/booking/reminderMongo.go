package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studioflow/models"
)

// CreateBatch inserts a computed reminder set in one write.
func (repo *MongoBookingRepo) CreateBatch(ctx context.Context, reminders []models.ScheduledReminder) error {
	if len(reminders) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	docs := make([]interface{}, 0, len(reminders))
	for _, r := range reminders {
		docs = append(docs, r)
	}
	if _, err := repo.reminderColl.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("error creating reminders: %w", err)
	}
	return nil
}

// GetReminderByID retrieves one scheduled reminder.
func (repo *MongoBookingRepo) GetReminderByID(ctx context.Context, id string) (*models.ScheduledReminder, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var r models.ScheduledReminder
	err := repo.reminderColl.FindOne(ctx, bson.M{"id": id}).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching reminder %s: %w", id, err)
	}
	return &r, nil
}

// SuppressPending flips the booking's unsent reminders to suppressed.
// Reminders that already fired keep their sent marker untouched.
func (repo *MongoBookingRepo) SuppressPending(ctx context.Context, bookingID string, at time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"booking_id": bookingID,
		"suppressed": false,
		"sent_at":    bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{"suppressed": true, "suppressed_at": at}}
	res, err := repo.reminderColl.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error suppressing reminders for booking %s: %w", bookingID, err)
	}
	return res.ModifiedCount, nil
}

// MarkSent records delivery hand-off for one reminder.
func (repo *MongoBookingRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := repo.reminderColl.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"sent_at": at}})
	if err != nil {
		return fmt.Errorf("error marking reminder %s sent: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDueUnsent returns reminders whose fire time has passed but that
// were never delivered or suppressed. The sweep re-enqueues these.
func (repo *MongoBookingRepo) ListDueUnsent(ctx context.Context, before time.Time, limit int64) ([]models.ScheduledReminder, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{
		"fire_at":    bson.M{"$lte": before},
		"suppressed": false,
		"sent_at":    bson.M{"$exists": false},
	}
	opts := options.Find().SetSort(bson.D{{Key: "fire_at", Value: 1}}).SetLimit(limit)
	cur, err := repo.reminderColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing due reminders: %w", err)
	}
	defer cur.Close(ctx)

	var reminders []models.ScheduledReminder
	if err := cur.All(ctx, &reminders); err != nil {
		return nil, fmt.Errorf("error decoding due reminders: %w", err)
	}
	return reminders, nil
}
