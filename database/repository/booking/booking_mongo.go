package bookingRepo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"studioflow/config"
	"studioflow/database"
)

// MongoBookingRepo implements BookingRepository and ReminderRepository
// on MongoDB.
type MongoBookingRepo struct {
	bookingColl  *mongo.Collection
	blockColl    *mongo.Collection
	reminderColl *mongo.Collection
}

// NewMongoBookingRepo wires the repo against the global Mongo client.
func NewMongoBookingRepo() *MongoBookingRepo {
	db := database.MongoClient.Database(config.AppConfig.MongoDatabase)
	repo := &MongoBookingRepo{
		bookingColl:  db.Collection("bookings"),
		blockColl:    db.Collection("availability_blocks"),
		reminderColl: db.Collection("reminders"),
	}
	repo.ensureIndexes()
	return repo
}

// ensureIndexes creates the indexes the conflict and reminder queries
// lean on. Index creation is idempotent.
func (repo *MongoBookingRepo) ensureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bookingIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "org_id", Value: 1}, {Key: "assigned_member_id", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "org_id", Value: 1}, {Key: "series_id", Value: 1}, {Key: "occurrence_index", Value: 1}}},
	}
	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, bookingIdx); err != nil {
		log.Printf("bookingRepo: failed to create booking indexes: %v", err)
	}

	blockIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "org_id", Value: 1}, {Key: "window.start", Value: 1}}},
	}
	if _, err := repo.blockColl.Indexes().CreateMany(ctx, blockIdx); err != nil {
		log.Printf("bookingRepo: failed to create block indexes: %v", err)
	}

	reminderIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
		{Keys: bson.D{{Key: "fire_at", Value: 1}, {Key: "suppressed", Value: 1}}},
	}
	if _, err := repo.reminderColl.Indexes().CreateMany(ctx, reminderIdx); err != nil {
		log.Printf("bookingRepo: failed to create reminder indexes: %v", err)
	}
}
