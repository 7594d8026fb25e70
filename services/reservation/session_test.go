package reservation

import (
	"context"
	"testing"

	"bookwise/models"
)

func newTestSessionService(repo *fakeRepo, store *fakeSessionStore) *DefaultReservationSessionService {
	return &DefaultReservationSessionService{
		Engine:   newTestEngine(repo, newFakeCache()),
		Store:    store,
		Window:   testWindow(),
		MinSlots: 4,
	}
}

func startSession(t *testing.T, svc *DefaultReservationSessionService) *models.SessionView {
	t.Helper()
	view, err := svc.InitiateSession(context.Background(), "U1", testBook, testDate)
	if err != nil {
		t.Fatalf("initiate session: %v", err)
	}
	return view
}

func TestSessionFlow(t *testing.T) {
	t.Parallel()

	t.Run("initiate returns an idle selection with the day view", func(t *testing.T) {
		svc := newTestSessionService(newFakeRepo(), newFakeSessionStore())
		view := startSession(t, svc)

		if view.Session.Selection.Phase != models.SelectionIdle {
			t.Fatalf("expected idle selection, got %q", view.Session.Selection.Phase)
		}
		if len(view.Day.Slots) != 32 {
			t.Fatalf("expected 32 slots in day view, got %d", len(view.Day.Slots))
		}
		if view.RangeAvailable {
			t.Fatalf("idle selection cannot be available")
		}
	})

	t.Run("pick, pick, confirm reserves the range and resets the selection", func(t *testing.T) {
		repo := newFakeRepo()
		store := newFakeSessionStore()
		svc := newTestSessionService(repo, store)
		view := startSession(t, svc)
		id := view.Session.ID
		ctx := context.Background()

		if _, err := svc.PickSlot(ctx, id, "U1", 10, ""); err != nil {
			t.Fatalf("pick start: %v", err)
		}
		view, err := svc.PickSlot(ctx, id, "U1", 13, "")
		if err != nil {
			t.Fatalf("pick end: %v", err)
		}
		if !view.RangeAvailable || view.SlotCount != 4 || view.DurationHours != 1.0 {
			t.Fatalf("expected available 4-slot 1.0h range, got %+v", view)
		}

		confirmation, err := svc.ConfirmReservation(ctx, id, "U1")
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if confirmation.StartSlot != 10 || confirmation.EndSlot != 13 {
			t.Fatalf("expected range [10, 13], got [%d, %d]", confirmation.StartSlot, confirmation.EndSlot)
		}
		if len(repo.records) != 4 {
			t.Fatalf("expected 4 stored records, got %d", len(repo.records))
		}

		saved, _ := store.Get(ctx, id)
		if saved.Selection.Phase != models.SelectionIdle {
			t.Fatalf("expected selection reset after confirmation, got %q", saved.Selection.Phase)
		}
	})

	t.Run("repeated confirm replays the same reservation", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestSessionService(repo, newFakeSessionStore())
		view := startSession(t, svc)
		id := view.Session.ID
		ctx := context.Background()

		svc.PickSlot(ctx, id, "U1", 10, "")
		svc.PickSlot(ctx, id, "U1", 13, "")
		first, err := svc.ConfirmReservation(ctx, id, "U1")
		if err != nil {
			t.Fatalf("first confirm: %v", err)
		}

		// A client retry after a lost response: the selection has been
		// reset server-side, so the confirm replays by session id.
		second, err := svc.ConfirmReservation(ctx, id, "U1")
		if err != nil {
			t.Fatalf("second confirm: %v", err)
		}
		if first.ReservationID != second.ReservationID {
			t.Fatalf("expected replayed reservation, got %q and %q", first.ReservationID, second.ReservationID)
		}
		if len(repo.records) != 4 {
			t.Fatalf("replay duplicated records: %d", len(repo.records))
		}
	})

	t.Run("confirm below the minimum duration is rejected", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestSessionService(repo, newFakeSessionStore())
		view := startSession(t, svc)
		id := view.Session.ID
		ctx := context.Background()

		svc.PickSlot(ctx, id, "U1", 10, "")
		svc.PickSlot(ctx, id, "U1", 11, "")
		_, err := svc.ConfirmReservation(ctx, id, "U1")
		re, ok := AsReservationError(err)
		if !ok || re.Code != CodeRangeTooShort {
			t.Fatalf("expected rangeTooShort, got %v", err)
		}
		if len(repo.records) != 0 {
			t.Fatalf("short range reached the store")
		}
	})

	t.Run("confirm with no selection is rejected", func(t *testing.T) {
		svc := newTestSessionService(newFakeRepo(), newFakeSessionStore())
		view := startSession(t, svc)

		_, err := svc.ConfirmReservation(context.Background(), view.Session.ID, "U1")
		re, ok := AsReservationError(err)
		if !ok || re.Code != CodeInvalidRange {
			t.Fatalf("expected invalidRange, got %v", err)
		}
	})

	t.Run("date change resets the selection", func(t *testing.T) {
		svc := newTestSessionService(newFakeRepo(), newFakeSessionStore())
		view := startSession(t, svc)
		id := view.Session.ID
		ctx := context.Background()

		svc.PickSlot(ctx, id, "U1", 10, "")
		view, err := svc.SetSessionDate(ctx, id, "U1", "2024-06-02")
		if err != nil {
			t.Fatalf("set date: %v", err)
		}
		if view.Session.Date != "2024-06-02" {
			t.Fatalf("expected date updated, got %q", view.Session.Date)
		}
		if view.Session.Selection.Phase != models.SelectionIdle {
			t.Fatalf("expected selection reset on date change, got %q", view.Session.Selection.Phase)
		}
	})

	t.Run("cancellation inside the selected range resets the selection", func(t *testing.T) {
		svc := newTestSessionService(newFakeRepo(), newFakeSessionStore())
		view := startSession(t, svc)
		id := view.Session.ID
		ctx := context.Background()

		svc.PickSlot(ctx, id, "U1", 10, "")
		svc.PickSlot(ctx, id, "U1", 13, "")

		if err := svc.NoteCancellation(ctx, id, "U1", 11); err != nil {
			t.Fatalf("note cancellation: %v", err)
		}
		saved, _ := svc.Store.Get(ctx, id)
		if saved.Selection.Phase != models.SelectionIdle {
			t.Fatalf("expected selection reset, got %q", saved.Selection.Phase)
		}
	})

	t.Run("cancellation outside the selected range is ignored", func(t *testing.T) {
		svc := newTestSessionService(newFakeRepo(), newFakeSessionStore())
		view := startSession(t, svc)
		id := view.Session.ID
		ctx := context.Background()

		svc.PickSlot(ctx, id, "U1", 10, "")
		svc.PickSlot(ctx, id, "U1", 13, "")

		if err := svc.NoteCancellation(ctx, id, "U1", 20); err != nil {
			t.Fatalf("note cancellation: %v", err)
		}
		saved, _ := svc.Store.Get(ctx, id)
		if saved.Selection.Phase != models.SelectionRangeChosen {
			t.Fatalf("selection should survive unrelated cancellation, got %q", saved.Selection.Phase)
		}
	})

	t.Run("sessions are scoped to their owner", func(t *testing.T) {
		svc := newTestSessionService(newFakeRepo(), newFakeSessionStore())
		view := startSession(t, svc)

		_, err := svc.PickSlot(context.Background(), view.Session.ID, "U2", 10, "")
		re, ok := AsReservationError(err)
		if !ok || re.Code != CodeForbidden {
			t.Fatalf("expected forbidden for foreign user, got %v", err)
		}
	})

	t.Run("unknown session reports sessionNotFound", func(t *testing.T) {
		svc := newTestSessionService(newFakeRepo(), newFakeSessionStore())

		_, err := svc.PickSlot(context.Background(), "missing", "U1", 10, "")
		re, ok := AsReservationError(err)
		if !ok || re.Code != CodeSessionNotFound {
			t.Fatalf("expected sessionNotFound, got %v", err)
		}
	})

	t.Run("cancelling the session removes it", func(t *testing.T) {
		store := newFakeSessionStore()
		svc := newTestSessionService(newFakeRepo(), store)
		view := startSession(t, svc)
		ctx := context.Background()

		if err := svc.CancelSession(ctx, view.Session.ID, "U1"); err != nil {
			t.Fatalf("cancel session: %v", err)
		}
		if got, _ := store.Get(ctx, view.Session.ID); got != nil {
			t.Fatalf("expected session gone, got %+v", got)
		}
	})
}
