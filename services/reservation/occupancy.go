package reservation

import (
	"bookwise/models"
)

// hashSeed is a rolling multiply-and-add hash over the seed string,
// wrapped to 32 bits and reduced to a non-negative integer. The
// formula (h<<5 - h, i.e. h*31) is kept stable so the synthetic busy
// set agrees with previously generated fixtures.
func hashSeed(value string) int {
	var h int32
	for _, r := range value {
		h = (h << 5) - h + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v)
}

// DefaultBusySlots derives the deterministic synthetic occupancy for a
// book on a date: between 2 and 5 distinct slot indices, a pure
// function of (bookID, date). It simulates baseline reading-room
// demand and is recomputed on every read, never stored.
func DefaultBusySlots(bookID, date string, slotCount int) map[int]struct{} {
	return busyFromSeed(hashSeed(bookID+":"+date), slotCount)
}

// busyFromSeed derives (seed%4)+2 distinct busy indices as
// (seed + i*3) mod slotCount.
func busyFromSeed(seed, slotCount int) map[int]struct{} {
	busy := make(map[int]struct{})
	if slotCount <= 0 {
		return busy
	}
	count := seed%4 + 2
	for i := 0; i < count; i++ {
		busy[(seed+i*3)%slotCount] = struct{}{}
	}
	return busy
}

// ResolveDay merges synthetic occupancy with stored reservation
// records into a per-slot view. A slot is occupied if it is in the
// synthetic busy set or holds at least one record; only real records
// carry an owner.
func ResolveDay(bookID, date string, slots []models.Slot, records []models.ReservationRecord) models.DayView {
	busy := DefaultBusySlots(bookID, date, len(slots))

	owners := make(map[int]string, len(records))
	for _, rec := range records {
		if _, ok := owners[rec.Slot]; !ok {
			owners[rec.Slot] = rec.UserID
		}
	}

	statuses := make([]models.SlotStatus, len(slots))
	for i, s := range slots {
		status := models.SlotStatus{Slot: s}
		if owner, ok := owners[s.Index]; ok {
			status.Occupied = true
			status.ReservedBy = owner
		} else if _, ok := busy[s.Index]; ok {
			status.Occupied = true
		}
		statuses[i] = status
	}

	return models.DayView{BookID: bookID, Date: date, Slots: statuses}
}

// conflictsWithin returns the occupied slot indices inside [start, end].
func conflictsWithin(day models.DayView, start, end int) []int {
	var conflicts []int
	for i := start; i <= end && i < len(day.Slots); i++ {
		if day.Slots[i].Occupied {
			conflicts = append(conflicts, i)
		}
	}
	return conflicts
}

// rangeFree reports whether every slot in [start, end] is free.
func rangeFree(day models.DayView, start, end int) bool {
	if start < 0 || end < start || end >= len(day.Slots) {
		return false
	}
	return len(conflictsWithin(day, start, end)) == 0
}
