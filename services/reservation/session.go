package reservation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bookwise/models"
	"bookwise/utils"
)

const sessionKeyPrefix = "resv-session:"

// SessionStore keeps selection sessions between requests.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.SelectionSession, error)
	Save(ctx context.Context, session *models.SelectionSession) error
	Delete(ctx context.Context, id string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore wraps a Redis client as a SessionStore with the
// given session TTL.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*models.SelectionSession, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session models.SelectionSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *models.SelectionSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+session.ID, raw, s.ttl).Err()
}

func (s *redisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKeyPrefix+id).Err()
}

// ReservationSessionService manages the stateful range-selection flow:
// start a session for a book and date, pick boundaries, confirm into a
// reservation, or abandon it.
type ReservationSessionService interface {
	InitiateSession(ctx context.Context, userID, bookID, date string) (*models.SessionView, error)
	SetSessionDate(ctx context.Context, sessionID, userID, date string) (*models.SessionView, error)
	PickSlot(ctx context.Context, sessionID, userID string, index int, boundary models.Boundary) (*models.SessionView, error)
	ConfirmReservation(ctx context.Context, sessionID, userID string) (*models.Confirmation, error)
	NoteCancellation(ctx context.Context, sessionID, userID string, slot int) error
	CancelSession(ctx context.Context, sessionID, userID string) error
}

// DefaultReservationSessionService implements ReservationSessionService.
type DefaultReservationSessionService struct {
	Engine SchedulingEngine
	Store  SessionStore
	Window Window
	// MinSlots is the minimum contiguous slots a confirmed reservation
	// must span. Enforced here, not in the selection machine.
	MinSlots int
}

func (svc *DefaultReservationSessionService) InitiateSession(ctx context.Context, userID, bookID, date string) (*models.SessionView, error) {
	day, err := svc.Engine.DayView(ctx, bookID, date)
	if err != nil {
		return nil, err
	}

	session := &models.SelectionSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		BookID:    bookID,
		Date:      date,
		Selection: NewSelection(),
		CreatedAt: time.Now(),
	}
	if err := svc.Store.Save(ctx, session); err != nil {
		return nil, NewPersistenceError(err)
	}

	utils.GetLogger().Debug("selection session started",
		zap.String("sessionId", session.ID),
		zap.String("bookId", bookID),
		zap.String("date", date),
	)
	return svc.view(session, day), nil
}

// SetSessionDate moves the session to another date and resets the
// selection: the old slot grid no longer applies.
func (svc *DefaultReservationSessionService) SetSessionDate(ctx context.Context, sessionID, userID, date string) (*models.SessionView, error) {
	session, err := svc.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	day, err := svc.Engine.DayView(ctx, session.BookID, date)
	if err != nil {
		return nil, err
	}

	session.Date = date
	ResetSelection(&session.Selection)
	if err := svc.Store.Save(ctx, session); err != nil {
		return nil, NewPersistenceError(err)
	}
	return svc.view(session, day), nil
}

// PickSlot applies one boundary pick. An explicit boundary refocuses
// the picker first (re-opening "From" after an end was chosen).
// Rejected picks are no-ops; the returned view reflects whatever the
// selection currently is.
func (svc *DefaultReservationSessionService) PickSlot(ctx context.Context, sessionID, userID string, index int, boundary models.Boundary) (*models.SessionView, error) {
	session, err := svc.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	day, err := svc.Engine.DayView(ctx, session.BookID, session.Date)
	if err != nil {
		return nil, err
	}

	if boundary != "" {
		FocusBoundary(&session.Selection, boundary)
	}
	changed := PickSlot(&session.Selection, day, index)
	if changed {
		if err := svc.Store.Save(ctx, session); err != nil {
			return nil, NewPersistenceError(err)
		}
	}
	return svc.view(session, day), nil
}

// ConfirmReservation turns the selected range into stored records.
// The session id doubles as the idempotency key, so retrying a confirm
// that already went through returns the same reservation.
func (svc *DefaultReservationSessionService) ConfirmReservation(ctx context.Context, sessionID, userID string) (*models.Confirmation, error) {
	session, err := svc.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	start, end, ok := SelectionRange(session.Selection)
	if !ok {
		// A confirm retry after the selection was already reset: replay
		// the reservation this session produced, if any.
		replayed, ferr := svc.Engine.FindReservation(ctx, session.BookID, session.Date, session.ID)
		if ferr != nil {
			return nil, ferr
		}
		if replayed != nil {
			return replayed, nil
		}
		return nil, NewInvalidRangeError("no range selected")
	}
	if count := end - start + 1; count < svc.MinSlots {
		return nil, NewRangeTooShortError(count, svc.MinSlots)
	}

	confirmation, err := svc.Engine.Reserve(ctx, ReserveInput{
		BookID:         session.BookID,
		Date:           session.Date,
		StartSlot:      start,
		EndSlot:        end,
		UserID:         session.UserID,
		IdempotencyKey: session.ID,
	})
	if err != nil {
		return nil, err
	}

	ResetSelection(&session.Selection)
	if err := svc.Store.Save(ctx, session); err != nil {
		// The reservation itself is durable; only the selection reset
		// may be retried.
		utils.GetLogger().Warn("failed to reset session after confirmation",
			zap.String("sessionId", session.ID), zap.Error(err))
	}
	return confirmation, nil
}

// NoteCancellation resets the selection when a cancelled slot falls
// inside the currently selected range.
func (svc *DefaultReservationSessionService) NoteCancellation(ctx context.Context, sessionID, userID string, slot int) error {
	session, err := svc.ownedSession(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if !SelectionContains(session.Selection, slot) {
		return nil
	}
	ResetSelection(&session.Selection)
	if err := svc.Store.Save(ctx, session); err != nil {
		return NewPersistenceError(err)
	}
	return nil
}

func (svc *DefaultReservationSessionService) CancelSession(ctx context.Context, sessionID, userID string) error {
	if _, err := svc.ownedSession(ctx, sessionID, userID); err != nil {
		return err
	}
	if err := svc.Store.Delete(ctx, sessionID); err != nil {
		return NewPersistenceError(err)
	}
	return nil
}

func (svc *DefaultReservationSessionService) ownedSession(ctx context.Context, sessionID, userID string) (*models.SelectionSession, error) {
	session, err := svc.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, NewPersistenceError(err)
	}
	if session == nil {
		return nil, NewSessionNotFoundError(sessionID)
	}
	if session.UserID != userID {
		return nil, NewForbiddenError("session belongs to another user")
	}
	return session, nil
}

func (svc *DefaultReservationSessionService) view(session *models.SelectionSession, day models.DayView) *models.SessionView {
	count := SelectionSlotCount(session.Selection)
	return &models.SessionView{
		Session:        *session,
		Day:            day,
		RangeAvailable: SelectionAvailable(session.Selection, day),
		SlotCount:      count,
		DurationHours:  svc.Window.DurationHours(count),
	}
}
