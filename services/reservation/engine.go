package reservation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	reservationRepo "bookwise/database/repository/reservation"
	"bookwise/models"
	"bookwise/utils"
)

const dateLayout = "2006-01-02"

// SchedulingEngine exposes the reservation store operations over the
// resolved day occupancy.
type SchedulingEngine interface {
	DayView(ctx context.Context, bookID, date string) (models.DayView, error)
	Reserve(ctx context.Context, in ReserveInput) (*models.Confirmation, error)
	FindReservation(ctx context.Context, bookID, date, reservationID string) (*models.Confirmation, error)
	Cancel(ctx context.Context, bookID, date string, slot int, userID string) error
}

// ReserveInput is one all-or-nothing range reservation request.
// IdempotencyKey, when set, doubles as the reservation id so a retried
// confirmation never creates duplicate slot records.
type ReserveInput struct {
	BookID         string
	Date           string
	StartSlot      int
	EndSlot        int
	UserID         string
	IdempotencyKey string
}

// bucketLockStore holds one mutex per (book, date) bucket so reserve
// and cancel re-validate occupancy under mutual exclusion.
type bucketLockStore struct {
	locks map[string]*sync.Mutex
	mu    sync.Mutex
}

func (s *bucketLockStore) get(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, exists := s.locks[key]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// DefaultSchedulingEngine implements SchedulingEngine over a
// repository (source of truth) and a read-through day-bucket cache.
type DefaultSchedulingEngine struct {
	Repo   reservationRepo.ReservationRepository
	Cache  BucketCache
	Window Window

	locks bucketLockStore
}

func NewSchedulingEngine(repo reservationRepo.ReservationRepository, cache BucketCache, window Window) *DefaultSchedulingEngine {
	return &DefaultSchedulingEngine{
		Repo:   repo,
		Cache:  cache,
		Window: window,
		locks:  bucketLockStore{locks: make(map[string]*sync.Mutex)},
	}
}

// DayView resolves the occupancy for a book on a date, serving the
// bucket from cache when possible.
func (se *DefaultSchedulingEngine) DayView(ctx context.Context, bookID, date string) (models.DayView, error) {
	if err := validateDate(date); err != nil {
		return models.DayView{}, err
	}
	records, err := se.loadBucket(ctx, bookID, date)
	if err != nil {
		return models.DayView{}, NewPersistenceError(err)
	}
	return ResolveDay(bookID, date, BuildSlots(se.Window), records), nil
}

func (se *DefaultSchedulingEngine) loadBucket(ctx context.Context, bookID, date string) ([]models.ReservationRecord, error) {
	key := models.BucketKey(bookID, date)
	if se.Cache != nil {
		if records, ok := se.Cache.Get(ctx, key); ok {
			return records, nil
		}
	}
	records, err := se.Repo.GetDayBucket(ctx, bookID, date)
	if err != nil {
		return nil, err
	}
	if se.Cache != nil {
		se.Cache.Set(ctx, key, records)
	}
	return records, nil
}

// Reserve creates one record per slot in [StartSlot, EndSlot], all
// sharing a fresh reservation id. Occupancy is re-validated here under
// the bucket lock; on any conflict nothing is written.
func (se *DefaultSchedulingEngine) Reserve(ctx context.Context, in ReserveInput) (*models.Confirmation, error) {
	if in.BookID == "" || in.UserID == "" {
		return nil, NewInvalidRangeError("book and user are required")
	}
	if err := validateDate(in.Date); err != nil {
		return nil, err
	}
	n := se.Window.SlotCount()
	if in.StartSlot < 0 || in.EndSlot < in.StartSlot || in.EndSlot >= n {
		return nil, NewInvalidRangeError(fmt.Sprintf("slot range [%d, %d] is not a valid range within 0..%d", in.StartSlot, in.EndSlot, n-1))
	}

	key := models.BucketKey(in.BookID, in.Date)
	lock := se.locks.get(key)
	lock.Lock()
	defer lock.Unlock()

	// Replay a retried confirmation instead of double-booking.
	if in.IdempotencyKey != "" {
		existing, err := se.Repo.FindByReservationID(ctx, in.BookID, in.Date, in.IdempotencyKey)
		if err != nil {
			return nil, NewPersistenceError(err)
		}
		if len(existing) > 0 {
			return se.confirmationFor(in.IdempotencyKey, existing), nil
		}
	}

	// Re-validate against the store, not the cache: confirmation is the
	// authoritative availability check.
	records, err := se.Repo.GetDayBucket(ctx, in.BookID, in.Date)
	if err != nil {
		return nil, NewPersistenceError(err)
	}
	day := ResolveDay(in.BookID, in.Date, BuildSlots(se.Window), records)
	if conflicts := conflictsWithin(day, in.StartSlot, in.EndSlot); len(conflicts) > 0 {
		return nil, NewSlotOccupiedError(conflicts)
	}

	reservationID := in.IdempotencyKey
	if reservationID == "" {
		reservationID = uuid.New().String()
	}
	now := time.Now()
	newRecords := make([]models.ReservationRecord, 0, in.EndSlot-in.StartSlot+1)
	for slot := in.StartSlot; slot <= in.EndSlot; slot++ {
		newRecords = append(newRecords, models.ReservationRecord{
			BookID:        in.BookID,
			Date:          in.Date,
			Slot:          slot,
			UserID:        in.UserID,
			ReservationID: reservationID,
			CreatedAt:     now,
		})
	}

	if err := se.Repo.InsertMany(ctx, newRecords); err != nil {
		// Cache deliberately untouched: it still mirrors the store.
		return nil, NewPersistenceError(err)
	}
	se.invalidate(ctx, key)

	utils.GetLogger().Info("reservation created",
		zap.String("reservationId", reservationID),
		zap.String("bookId", in.BookID),
		zap.String("date", in.Date),
		zap.Int("startSlot", in.StartSlot),
		zap.Int("endSlot", in.EndSlot),
		zap.String("userId", in.UserID),
	)
	return se.confirmationFor(reservationID, newRecords), nil
}

// FindReservation looks up an existing reservation group; nil when no
// records carry the id.
func (se *DefaultSchedulingEngine) FindReservation(ctx context.Context, bookID, date, reservationID string) (*models.Confirmation, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}
	records, err := se.Repo.FindByReservationID(ctx, bookID, date, reservationID)
	if err != nil {
		return nil, NewPersistenceError(err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return se.confirmationFor(reservationID, records), nil
}

// Cancel removes the caller's reservation at the given slot. Records
// sharing a reservation id are removed as a group; a record without
// one is removed alone.
func (se *DefaultSchedulingEngine) Cancel(ctx context.Context, bookID, date string, slot int, userID string) error {
	if err := validateDate(date); err != nil {
		return err
	}
	if slot < 0 || slot >= se.Window.SlotCount() {
		return NewInvalidRangeError(fmt.Sprintf("slot %d is outside the reading window", slot))
	}

	key := models.BucketKey(bookID, date)
	lock := se.locks.get(key)
	lock.Lock()
	defer lock.Unlock()

	records, err := se.Repo.GetDayBucket(ctx, bookID, date)
	if err != nil {
		return NewPersistenceError(err)
	}

	var mine *models.ReservationRecord
	foundAtSlot := false
	for i := range records {
		if records[i].Slot != slot {
			continue
		}
		foundAtSlot = true
		if records[i].UserID == userID {
			mine = &records[i]
			break
		}
	}
	if mine == nil {
		if foundAtSlot {
			return NewForbiddenError("reservation at this slot belongs to another user")
		}
		return NewNotFoundError(fmt.Sprintf("no reservation at slot %d", slot))
	}

	var deleted int64
	if mine.ReservationID != "" {
		deleted, err = se.Repo.DeleteByReservationID(ctx, bookID, date, mine.ReservationID)
	} else {
		deleted, err = se.Repo.DeleteSingle(ctx, bookID, date, slot, userID)
	}
	if err != nil {
		return NewPersistenceError(err)
	}
	if deleted == 0 {
		return NewNotFoundError(fmt.Sprintf("no reservation at slot %d", slot))
	}
	se.invalidate(ctx, key)

	utils.GetLogger().Info("reservation cancelled",
		zap.String("reservationId", mine.ReservationID),
		zap.String("bookId", bookID),
		zap.String("date", date),
		zap.Int("slot", slot),
		zap.Int64("recordsRemoved", deleted),
	)
	return nil
}

func (se *DefaultSchedulingEngine) invalidate(ctx context.Context, key string) {
	if se.Cache != nil {
		se.Cache.Invalidate(ctx, key)
	}
}

func (se *DefaultSchedulingEngine) confirmationFor(reservationID string, records []models.ReservationRecord) *models.Confirmation {
	start, end := records[0].Slot, records[0].Slot
	for _, rec := range records[1:] {
		if rec.Slot < start {
			start = rec.Slot
		}
		if rec.Slot > end {
			end = rec.Slot
		}
	}
	count := end - start + 1
	return &models.Confirmation{
		ReservationID: reservationID,
		BookID:        records[0].BookID,
		Date:          records[0].Date,
		StartSlot:     start,
		EndSlot:       end,
		SlotCount:     count,
		DurationHours: se.Window.DurationHours(count),
	}
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return NewInvalidRangeError(fmt.Sprintf("date %q is not a valid YYYY-MM-DD date", date))
	}
	return nil
}
