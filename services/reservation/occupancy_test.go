package reservation

import (
	"reflect"
	"testing"
	"time"

	"bookwise/models"
)

func TestDefaultBusySlots(t *testing.T) {
	t.Parallel()

	t.Run("deterministic across repeated computations", func(t *testing.T) {
		first := DefaultBusySlots("B1", "2024-06-01", 32)
		for i := 0; i < 10; i++ {
			if got := DefaultBusySlots("B1", "2024-06-01", 32); !reflect.DeepEqual(got, first) {
				t.Fatalf("run %d: busy set changed: %v vs %v", i, got, first)
			}
		}
	})

	t.Run("busy count stays between 2 and 5", func(t *testing.T) {
		books := []string{"B1", "B2", "algebra-101", "xx"}
		dates := []string{"2024-06-01", "2024-06-02", "2025-01-31"}
		for _, b := range books {
			for _, d := range dates {
				busy := DefaultBusySlots(b, d, 32)
				if len(busy) < 2 || len(busy) > 5 {
					t.Fatalf("%s %s: busy set size %d out of bounds", b, d, len(busy))
				}
				for idx := range busy {
					if idx < 0 || idx >= 32 {
						t.Fatalf("%s %s: busy index %d outside grid", b, d, idx)
					}
				}
			}
		}
	})

	t.Run("seed 7 strides by three from its own index", func(t *testing.T) {
		// count = 7%4+2 = 5, indices (7+3i)%32 for i in 0..4.
		busy := busyFromSeed(7, 32)
		want := map[int]struct{}{7: {}, 10: {}, 13: {}, 16: {}, 19: {}}
		if !reflect.DeepEqual(busy, want) {
			t.Fatalf("expected busy set %v, got %v", want, busy)
		}
		for _, idx := range []int{7, 10, 13} {
			if _, ok := busy[idx]; !ok {
				t.Fatalf("index %d missing from busy set %v", idx, busy)
			}
		}
	})

	t.Run("empty grid stays empty", func(t *testing.T) {
		if got := DefaultBusySlots("B1", "2024-06-01", 0); len(got) != 0 {
			t.Fatalf("expected no busy slots for empty grid, got %v", got)
		}
	})
}

func TestResolveDay(t *testing.T) {
	t.Parallel()

	slots := BuildSlots(testWindow())

	t.Run("merges synthetic and stored occupancy", func(t *testing.T) {
		records := []models.ReservationRecord{
			{BookID: "B1", Date: "2024-06-01", Slot: 10, UserID: "U1", ReservationID: "r1", CreatedAt: time.Now()},
		}
		day := ResolveDay("B1", "2024-06-01", slots, records)

		if !day.Slots[10].Occupied || day.Slots[10].ReservedBy != "U1" {
			t.Fatalf("slot 10 should be occupied by U1, got %+v", day.Slots[10])
		}

		busy := DefaultBusySlots("B1", "2024-06-01", len(slots))
		for idx := range busy {
			if !day.Slots[idx].Occupied {
				t.Fatalf("synthetic busy slot %d not marked occupied", idx)
			}
			if idx != 10 && day.Slots[idx].ReservedBy != "" {
				t.Fatalf("synthetic busy slot %d should have no owner, got %q", idx, day.Slots[idx].ReservedBy)
			}
		}

		for i, s := range day.Slots {
			_, synthetic := busy[i]
			if !synthetic && i != 10 && s.Occupied {
				t.Fatalf("slot %d unexpectedly occupied", i)
			}
		}
	})

	t.Run("pure given the same records snapshot", func(t *testing.T) {
		records := []models.ReservationRecord{
			{BookID: "B1", Date: "2024-06-01", Slot: 5, UserID: "U2", ReservationID: "r2"},
		}
		a := ResolveDay("B1", "2024-06-01", slots, records)
		b := ResolveDay("B1", "2024-06-01", slots, records)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("resolver is not idempotent")
		}
	})
}
