// File: database/repository/reservation/crud.go
package reservationRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookwise/models"
)

func (r *mongoReservationRepo) GetDayBucket(ctx context.Context, bookID, date string) ([]models.ReservationRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"bookId": bookID, "date": date}
	opts := options.Find().SetSort(bson.D{{Key: "slot", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.ReservationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mongoReservationRepo) FindByReservationID(ctx context.Context, bookID, date, reservationID string) ([]models.ReservationRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"bookId": bookID, "date": date, "reservationId": reservationID}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.ReservationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *mongoReservationRepo) InsertMany(ctx context.Context, records []models.ReservationRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs := make([]interface{}, len(records))
	for i, rec := range records {
		docs[i] = rec
	}
	_, err := r.coll.InsertMany(ctx, docs, &options.InsertManyOptions{Ordered: boolPtr(true)})
	return err
}

func (r *mongoReservationRepo) DeleteByReservationID(ctx context.Context, bookID, date, reservationID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"bookId": bookID, "date": date, "reservationId": reservationID}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *mongoReservationRepo) DeleteSingle(ctx context.Context, bookID, date string, slot int, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"bookId": bookID, "date": date, "slot": slot, "userId": userID}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func boolPtr(b bool) *bool { return &b }
