package models

import (
	"fmt"
	"time"
)

// ReservationRecord is one reserved slot for a book on a date.
// Records created in a single confirmation share a ReservationID and
// are always cancelled together. Records are never edited in place.
type ReservationRecord struct {
	BookID        string    `bson:"bookId" json:"bookId"`
	Date          string    `bson:"date" json:"date"` // YYYY-MM-DD
	Slot          int       `bson:"slot" json:"slot"`
	UserID        string    `bson:"userId" json:"userId"`
	ReservationID string    `bson:"reservationId,omitempty" json:"reservationId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// BucketKey is the composite key a day bucket is cached under.
func BucketKey(bookID, date string) string {
	return fmt.Sprintf("%s:%s", bookID, date)
}

// Confirmation is returned to the caller after a successful reserve.
type Confirmation struct {
	ReservationID string  `json:"reservationId"`
	BookID        string  `json:"bookId"`
	Date          string  `json:"date"`
	StartSlot     int     `json:"startSlot"`
	EndSlot       int     `json:"endSlot"`
	SlotCount     int     `json:"slotCount"`
	DurationHours float64 `json:"durationHours"`
}
