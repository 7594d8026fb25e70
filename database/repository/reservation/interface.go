// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"

	"bookwise/database"
	"bookwise/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ReservationRepository is the persistence seam for reading-room
// reservations. A day bucket is every record for one (book, date).
type ReservationRepository interface {
	GetDayBucket(ctx context.Context, bookID, date string) ([]models.ReservationRecord, error)
	FindByReservationID(ctx context.Context, bookID, date, reservationID string) ([]models.ReservationRecord, error)
	InsertMany(ctx context.Context, records []models.ReservationRecord) error
	DeleteByReservationID(ctx context.Context, bookID, date, reservationID string) (int64, error)
	DeleteSingle(ctx context.Context, bookID, date string, slot int, userID string) (int64, error)
	EnsureIndexes() error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo constructs a new MongoDB ReservationRepository.
func NewMongoReservationRepo() ReservationRepository {
	db := database.MongoClient.Database("bookwise")
	return &mongoReservationRepo{
		coll: db.Collection("reading_reservations"),
	}
}
