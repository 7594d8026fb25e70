// FILE: database/repository/reservation/indexes.go
package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the reading_reservations collection.
func (r *mongoReservationRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Compound index for bookId and date (primary query pattern: day bucket)
		{
			Keys:    bson.D{{Key: "bookId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("book_date_idx"),
		},
		// One record per slot per day bucket
		{
			Keys:    bson.D{{Key: "bookId", Value: 1}, {Key: "date", Value: 1}, {Key: "slot", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("book_date_slot_idx"),
		},
		// Group lookup for cancellation and idempotent retries
		{
			Keys:    bson.D{{Key: "reservationId", Value: 1}},
			Options: options.Index().SetName("reservation_id_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create reservation indexes: %w", err)
	}
	return nil
}
