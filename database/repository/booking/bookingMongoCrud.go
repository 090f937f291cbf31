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

const queryTimeout = 5 * time.Second

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.bookingColl.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves one booking inside the org scope.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, orgID, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var b models.Booking
	err := repo.bookingColl.FindOne(ctx, bson.M{"id": id, "org_id": orgID}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &b, nil
}

// UpdateStatus persists a lifecycle move. Cancellation keeps the record;
// bookings are never physically deleted here.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, orgID, id string, status models.BookingStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"id": id, "org_id": orgID}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": at}}
	res, err := repo.bookingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBySeries returns a series' members ordered by occurrence index.
func (repo *MongoBookingRepo) ListBySeries(ctx context.Context, orgID, seriesID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "occurrence_index", Value: 1}})
	cur, err := repo.bookingColl.Find(ctx, bson.M{"org_id": orgID, "series_id": seriesID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing series %s: %w", seriesID, err)
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding series %s: %w", seriesID, err)
	}
	return bookings, nil
}
