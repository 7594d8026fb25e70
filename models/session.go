package models

import "time"

// Boundary marks which end of the range the next pick sets.
type Boundary string

const (
	BoundaryStart Boundary = "start"
	BoundaryEnd   Boundary = "end"
)

// SelectionPhase is the current state of the range-selection machine.
type SelectionPhase string

const (
	SelectionIdle        SelectionPhase = "idle"
	SelectionStartChosen SelectionPhase = "startChosen"
	SelectionRangeChosen SelectionPhase = "rangeChosen"
)

// Selection is the transient two-boundary range pick. Indices are -1
// while unset. It is never persisted to the reservation store; it only
// lives inside a cached SelectionSession.
type Selection struct {
	StartIndex     int            `json:"startIndex"`
	EndIndex       int            `json:"endIndex"`
	ActiveBoundary Boundary       `json:"activeBoundary"`
	Phase          SelectionPhase `json:"phase"`
}

// SelectionSession is one user's in-progress range pick for a book on
// a date, cached in Redis between requests.
type SelectionSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	BookID    string    `json:"bookId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Selection Selection `json:"selection"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionView is what session endpoints return: the session plus the
// freshly resolved day occupancy it was computed against.
type SessionView struct {
	Session        SelectionSession `json:"session"`
	Day            DayView          `json:"day"`
	RangeAvailable bool             `json:"rangeAvailable"`
	SlotCount      int              `json:"slotCount"`
	DurationHours  float64          `json:"durationHours"`
}
