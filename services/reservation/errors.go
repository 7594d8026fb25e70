package reservation

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidRange    = "invalidRange"
	CodeSlotOccupied    = "slotOccupied"
	CodeNotFound        = "notFound"
	CodeForbidden       = "forbidden"
	CodePersistence     = "persistence"
	CodeSessionNotFound = "sessionNotFound"
	CodeRangeTooShort   = "rangeTooShort"
)

// ReservationError carries a machine-readable code and, for occupancy
// conflicts, the conflicting slot indices.
type ReservationError struct {
	Code    string
	Message string
	Slots   []int
	Err     error
}

func (e *ReservationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ReservationError) Unwrap() error {
	return e.Err
}

func NewInvalidRangeError(msg string) error {
	return &ReservationError{Code: CodeInvalidRange, Message: msg}
}

func NewSlotOccupiedError(slots []int) error {
	return &ReservationError{
		Code:    CodeSlotOccupied,
		Message: fmt.Sprintf("%d requested slot(s) are already occupied", len(slots)),
		Slots:   slots,
	}
}

func NewNotFoundError(msg string) error {
	return &ReservationError{Code: CodeNotFound, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &ReservationError{Code: CodeForbidden, Message: msg}
}

func NewPersistenceError(err error) error {
	return &ReservationError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("reservation store unavailable: %v", err),
		Err:     err,
	}
}

func NewSessionNotFoundError(sessionID string) error {
	return &ReservationError{
		Code:    CodeSessionNotFound,
		Message: fmt.Sprintf("selection session %s does not exist or has expired", sessionID),
	}
}

func NewRangeTooShortError(got, min int) error {
	return &ReservationError{
		Code:    CodeRangeTooShort,
		Message: fmt.Sprintf("selected range spans %d slot(s), minimum is %d", got, min),
	}
}

// AsReservationError unwraps err into a *ReservationError when possible.
func AsReservationError(err error) (*ReservationError, bool) {
	var re *ReservationError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
