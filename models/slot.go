package models

// Slot is one fixed-length interval within the daily reading window,
// identified by its ordinal index. Labels are derived from the index,
// never stored.
type Slot struct {
	Index int    `json:"index"`
	Label string `json:"label"` // "HH:MM - HH:MM"
}

// SlotStatus is the resolved occupancy for one slot of a day view.
// ReservedBy is set only when the slot is held by a stored reservation;
// synthetic occupancy has no owner.
type SlotStatus struct {
	Slot
	Occupied   bool   `json:"occupied"`
	ReservedBy string `json:"reservedBy,omitempty"`
}

// DayView is the full occupancy picture for one book on one date.
type DayView struct {
	BookID string       `json:"bookId"`
	Date   string       `json:"date"`
	Slots  []SlotStatus `json:"slots"`
}
