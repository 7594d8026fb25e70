package reservation

import (
	"bookwise/models"
)

// NewSelection returns an empty selection in the idle state.
func NewSelection() models.Selection {
	return models.Selection{
		StartIndex:     -1,
		EndIndex:       -1,
		ActiveBoundary: models.BoundaryStart,
		Phase:          models.SelectionIdle,
	}
}

// ResetSelection clears the selection back to idle. Called on date
// change, after a confirmed reservation, and when a cancellation hits
// a slot inside the current range.
func ResetSelection(sel *models.Selection) {
	*sel = NewSelection()
}

// FocusBoundary makes the next pick set the given boundary, matching
// the picker's From/To flip-flop.
func FocusBoundary(sel *models.Selection, b models.Boundary) {
	if b == models.BoundaryStart || b == models.BoundaryEnd {
		sel.ActiveBoundary = b
	}
}

// PickSlot applies one boundary pick against the current occupancy.
// Illegal picks (occupied slot, end before start, range crossing an
// occupied slot) leave the selection untouched and return false.
func PickSlot(sel *models.Selection, day models.DayView, index int) bool {
	if index < 0 || index >= len(day.Slots) {
		return false
	}
	if day.Slots[index].Occupied {
		return false
	}

	if sel.ActiveBoundary == models.BoundaryStart || sel.StartIndex < 0 {
		sel.StartIndex = index
		sel.EndIndex = index
		sel.ActiveBoundary = models.BoundaryEnd
		sel.Phase = models.SelectionStartChosen
		return true
	}

	if index < sel.StartIndex {
		return false
	}
	if !rangeFree(day, sel.StartIndex, index) {
		return false
	}

	sel.EndIndex = index
	sel.Phase = models.SelectionRangeChosen
	return true
}

// SelectionRange returns the inclusive slot range, ok=false while no
// boundary has been chosen.
func SelectionRange(sel models.Selection) (start, end int, ok bool) {
	if sel.StartIndex < 0 || sel.EndIndex < 0 {
		return 0, 0, false
	}
	return sel.StartIndex, sel.EndIndex, true
}

// SelectionSlotCount is the number of slots the selection spans.
func SelectionSlotCount(sel models.Selection) int {
	start, end, ok := SelectionRange(sel)
	if !ok {
		return 0
	}
	return end - start + 1
}

// SelectionAvailable recomputes whether every selected slot is still
// free against the given occupancy, catching occupancy that appeared
// after the range was picked.
func SelectionAvailable(sel models.Selection, day models.DayView) bool {
	start, end, ok := SelectionRange(sel)
	if !ok {
		return false
	}
	return rangeFree(day, start, end)
}

// SelectionContains reports whether the slot index falls inside the
// currently selected range.
func SelectionContains(sel models.Selection, index int) bool {
	start, end, ok := SelectionRange(sel)
	if !ok {
		return false
	}
	return index >= start && index <= end
}
