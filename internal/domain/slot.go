package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// DurationUnit unit a service duration is expressed in
type DurationUnit string

const (
	DurationUnitMinutes DurationUnit = "minutes"
	DurationUnitHours   DurationUnit = "hours"
)

// IsValid returns true for a known unit
func (u DurationUnit) IsValid() bool {
	return u == DurationUnitMinutes || u == DurationUnitHours
}

// ToMinutes normalizes a duration value to minutes.
// A duration never exceeds one day, so larger values are rejected before multiplying.
func (u DurationUnit) ToMinutes(value int) (int, error) {
	switch u {
	case DurationUnitMinutes:
		if value > types.MinutesPerDay {
			return 0, fmt.Errorf("%w: duration %d minutes exceeds a day", ErrInvalidInterval, value)
		}
		return value, nil
	case DurationUnitHours:
		if value > types.MinutesPerDay/60 {
			return 0, fmt.Errorf("%w: duration %d hours exceeds a day", ErrInvalidInterval, value)
		}
		return value * 60, nil
	default:
		return 0, fmt.Errorf("%w: unknown duration unit %q", ErrInvalidInterval, u)
	}
}

// TimeInterval half-open interval [Start, End) within a single calendar day
type TimeInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// NewTimeInterval builds an interval from a start time and a duration
func NewTimeInterval(start types.TimeString, duration int, unit DurationUnit) (TimeInterval, error) {
	minutes, err := unit.ToMinutes(duration)
	if err != nil {
		return TimeInterval{}, err
	}
	if minutes <= 0 {
		return TimeInterval{}, fmt.Errorf("%w: duration must be positive, got %d %s", ErrInvalidInterval, duration, unit)
	}
	if err := start.Validate(); err != nil {
		return TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	end, err := start.AddMinutes(minutes)
	if err != nil {
		return TimeInterval{}, fmt.Errorf("%w: %v", ErrInvalidInterval, err)
	}

	return TimeInterval{Start: start, End: end}, nil
}

// DurationMinutes returns the interval length in minutes
func (i TimeInterval) DurationMinutes() int {
	return i.End.Minutes() - i.Start.Minutes()
}

// IsValid returns true when both bounds are valid and End > Start
func (i TimeInterval) IsValid() bool {
	return i.Start.Validate() == nil && i.End.Validate() == nil && i.End.IsAfter(i.Start)
}

// Overlaps strict half-open overlap test.
// Intervals that only touch (one ends exactly when the other starts) do not overlap.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.IsBefore(other.End) && i.End.IsAfter(other.Start)
}

// Contains returns true if t falls within [Start, End)
func (i TimeInterval) Contains(t types.TimeString) bool {
	return !t.IsBefore(i.Start) && t.IsBefore(i.End)
}

// Within returns true when the interval lies entirely inside outer
func (i TimeInterval) Within(outer TimeInterval) bool {
	return !i.Start.IsBefore(outer.Start) && !i.End.IsAfter(outer.End)
}

func (i TimeInterval) String() string {
	return fmt.Sprintf("[%s-%s)", i.Start, i.End)
}

// SlotStatus status of a booked slot
type SlotStatus string

const (
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusCompleted SlotStatus = "completed"
	SlotStatusCancelled SlotStatus = "cancelled"
	SlotStatusNoShow    SlotStatus = "no_show"
)

// ParseSlotStatus converts a raw string into a known status
func ParseSlotStatus(s string) (SlotStatus, error) {
	status := SlotStatus(s)
	switch status {
	case SlotStatusBooked, SlotStatusCompleted, SlotStatusCancelled, SlotStatusNoShow:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, s)
	}
}

// IsBlocking returns true if a slot in this status occupies the room.
// no_show is treated like cancelled.
func (s SlotStatus) IsBlocking() bool {
	return s == SlotStatusBooked
}

// IsTerminal returns true if no transitions are allowed out of the status
func (s SlotStatus) IsTerminal() bool {
	return s == SlotStatusCompleted || s == SlotStatusCancelled || s == SlotStatusNoShow
}

// CanTransitionTo booked -> completed | cancelled | no_show; nothing else
func (s SlotStatus) CanTransitionTo(next SlotStatus) bool {
	return s == SlotStatusBooked && next.IsTerminal()
}

// BookedSlot occupancy record of a room on a date
type BookedSlot struct {
	ID        int64
	BookingID int64
	RoomID    int64
	PackageID int64
	Date      time.Time
	Interval  TimeInterval
	Status    SlotStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the slot participates in conflict detection
func (s *BookedSlot) IsBlocking() bool {
	return s.Status.IsBlocking()
}

// TransitionTo moves the slot to the next status following the state machine
func (s *BookedSlot) TransitionTo(next SlotStatus) error {
	if !s.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, s.Status, next)
	}
	s.Status = next
	return nil
}

// SameDay reports whether two dates fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates a time to midnight UTC of its calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
