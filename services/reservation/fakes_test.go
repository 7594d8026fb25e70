package reservation

import (
	"context"
	"errors"

	"bookwise/models"
)

var errBackendDown = errors.New("backend down")

// fakeRepo is an in-memory ReservationRepository with switchable
// failure modes.
type fakeRepo struct {
	records    []models.ReservationRecord
	failGet    bool
	failInsert bool
	failDelete bool
}

func newFakeRepo(records ...models.ReservationRecord) *fakeRepo {
	return &fakeRepo{records: records}
}

func (r *fakeRepo) GetDayBucket(_ context.Context, bookID, date string) ([]models.ReservationRecord, error) {
	if r.failGet {
		return nil, errBackendDown
	}
	var out []models.ReservationRecord
	for _, rec := range r.records {
		if rec.BookID == bookID && rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRepo) FindByReservationID(_ context.Context, bookID, date, reservationID string) ([]models.ReservationRecord, error) {
	if r.failGet {
		return nil, errBackendDown
	}
	var out []models.ReservationRecord
	for _, rec := range r.records {
		if rec.BookID == bookID && rec.Date == date && rec.ReservationID == reservationID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRepo) InsertMany(_ context.Context, records []models.ReservationRecord) error {
	if r.failInsert {
		return errBackendDown
	}
	r.records = append(r.records, records...)
	return nil
}

func (r *fakeRepo) DeleteByReservationID(_ context.Context, bookID, date, reservationID string) (int64, error) {
	if r.failDelete {
		return 0, errBackendDown
	}
	var kept []models.ReservationRecord
	var deleted int64
	for _, rec := range r.records {
		if rec.BookID == bookID && rec.Date == date && rec.ReservationID == reservationID {
			deleted++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return deleted, nil
}

func (r *fakeRepo) DeleteSingle(_ context.Context, bookID, date string, slot int, userID string) (int64, error) {
	if r.failDelete {
		return 0, errBackendDown
	}
	for i, rec := range r.records {
		if rec.BookID == bookID && rec.Date == date && rec.Slot == slot && rec.UserID == userID {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeRepo) EnsureIndexes() error { return nil }

// fakeCache records cache traffic so tests can assert read-through and
// invalidation behavior.
type fakeCache struct {
	entries       map[string][]models.ReservationRecord
	sets          []string
	invalidations []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]models.ReservationRecord)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]models.ReservationRecord, bool) {
	records, ok := c.entries[key]
	return records, ok
}

func (c *fakeCache) Set(_ context.Context, key string, records []models.ReservationRecord) {
	c.entries[key] = records
	c.sets = append(c.sets, key)
}

func (c *fakeCache) Invalidate(_ context.Context, key string) {
	delete(c.entries, key)
	c.invalidations = append(c.invalidations, key)
}

// fakeSessionStore is an in-memory SessionStore.
type fakeSessionStore struct {
	sessions map[string]models.SelectionSession
	failSave bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]models.SelectionSession)}
}

func (s *fakeSessionStore) Get(_ context.Context, id string) (*models.SelectionSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	clone := session
	return &clone, nil
}

func (s *fakeSessionStore) Save(_ context.Context, session *models.SelectionSession) error {
	if s.failSave {
		return errBackendDown
	}
	s.sessions[session.ID] = *session
	return nil
}

func (s *fakeSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func testWindow() Window {
	return Window{OpenHour: 8, CloseHour: 16, SlotMinutes: 15}
}
