package bookingRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"studioflow/models"
)

// FindConflicting gathers the busy-interval candidates for an
// availability check: bookings in the member scope whose window touches
// the probe window, then time-off blocks. The checker applies half-open
// overlap semantics and status filtering on top.
func (repo *MongoBookingRepo) FindConflicting(ctx context.Context, scope models.ConflictScope, window models.TimeWindow) ([]models.AvailabilityBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	bookingFilter := bson.M{
		"org_id":     scope.OrgID,
		"start_time": bson.M{"$lt": window.End},
		"end_time":   bson.M{"$gt": window.Start},
	}
	if scope.MemberID != "" {
		bookingFilter["assigned_member_id"] = scope.MemberID
	}

	cur, err := repo.bookingColl.Find(ctx, bookingFilter)
	if err != nil {
		return nil, fmt.Errorf("error querying conflicting bookings: %w", err)
	}
	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding conflicting bookings: %w", err)
	}

	blocks := make([]models.AvailabilityBlock, 0, len(bookings))
	for _, b := range bookings {
		blocks = append(blocks, models.AvailabilityBlock{
			ID:            b.ID,
			Kind:          models.BlockKindBooking,
			Window:        b.Window(),
			MemberID:      b.AssignedMemberID,
			BookingStatus: b.Status,
			Label:         b.Title,
			CreatedAt:     b.CreatedAt,
		})
	}

	blockFilter := bson.M{
		"org_id":       scope.OrgID,
		"window.start": bson.M{"$lt": window.End},
		"window.end":   bson.M{"$gt": window.Start},
	}
	bcur, err := repo.blockColl.Find(ctx, blockFilter)
	if err != nil {
		return nil, fmt.Errorf("error querying time-off blocks: %w", err)
	}
	var offBlocks []models.AvailabilityBlock
	if err := bcur.All(ctx, &offBlocks); err != nil {
		return nil, fmt.Errorf("error decoding time-off blocks: %w", err)
	}

	return append(blocks, offBlocks...), nil
}
