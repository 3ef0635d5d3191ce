package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration malformed slot grid configuration (caller programming error)
	ErrInvalidConfiguration = errors.New("domain: invalid slot grid configuration")

	// ErrSlotConflict candidate interval overlaps an existing booked slot
	ErrSlotConflict = errors.New("domain: slot conflicts with an existing booking")

	// ErrInvalidRule pricing rule amount or recurrence is out of range
	ErrInvalidRule = errors.New("domain: invalid pricing rule")

	// ErrInvalidInterval interval is empty, inverted or leaves the day
	ErrInvalidInterval = errors.New("domain: invalid time interval")

	// ErrInvalidStatusTransition slot status change is not allowed by the state machine
	ErrInvalidStatusTransition = errors.New("domain: invalid slot status transition")
)

// ConflictError describes which booked slot a candidate collided with.
// errors.Is(err, ErrSlotConflict) holds for it.
type ConflictError struct {
	Candidate TimeInterval
	Existing  BookedSlot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: candidate %s overlaps slot id=%d %s",
		ErrSlotConflict.Error(), e.Candidate, e.Existing.ID, e.Existing.Interval)
}

func (e *ConflictError) Unwrap() error {
	return ErrSlotConflict
}
