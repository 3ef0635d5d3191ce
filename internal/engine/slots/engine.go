// Package slots decides whether a room is free for an interval and lists the
// free intervals of a slot grid. All functions are pure: callers load the
// existing slots and the grid config and own persistence and locking.
package slots

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// HasConflict returns true if the candidate overlaps any blocking slot
func HasConflict(existing []domain.BookedSlot, candidate domain.TimeInterval) bool {
	_, found := FindConflict(existing, candidate)
	return found
}

// FindConflict returns the first blocking slot the candidate overlaps
func FindConflict(existing []domain.BookedSlot, candidate domain.TimeInterval) (domain.BookedSlot, bool) {
	for _, slot := range existing {
		if !slot.IsBlocking() {
			continue
		}
		if candidate.Overlaps(slot.Interval) {
			return slot, true
		}
	}
	return domain.BookedSlot{}, false
}

// CheckConflict returns *domain.ConflictError if the candidate overlaps a blocking slot
func CheckConflict(existing []domain.BookedSlot, candidate domain.TimeInterval) error {
	slot, found := FindConflict(existing, candidate)
	if !found {
		return nil
	}
	return &domain.ConflictError{Candidate: candidate, Existing: slot}
}

// ExcludeSlot returns a copy of existing without the slot with the given id.
// Used on updates so that a slot never conflicts with its own previous record.
func ExcludeSlot(existing []domain.BookedSlot, slotID int64) []domain.BookedSlot {
	return slices.DeleteFunc(slices.Clone(existing), func(s domain.BookedSlot) bool {
		return s.ID == slotID
	})
}

// AvailableSlots returns a lazy ascending sequence of free intervals of the grid.
// A candidate is dropped when it does not fit the grid or overlaps a blocking slot.
// An empty sequence is a valid result; an invalid config is an error.
func AvailableSlots(cfg *domain.SlotGridConfig, existing []domain.BookedSlot) (iter.Seq[domain.TimeInterval], error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", domain.ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	duration, err := cfg.ServiceDurationMinutes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}

	gridStart := cfg.GridStart.Minutes()
	gridEnd := cfg.GridEnd.Minutes()
	step := cfg.IntervalMinutes

	return func(yield func(domain.TimeInterval) bool) {
		for start := gridStart; start+duration <= gridEnd; start += step {
			startTS, err := types.NewTimeStringFromMinutes(start)
			if err != nil {
				return
			}
			endTS, err := types.NewTimeStringFromMinutes(start + duration)
			if err != nil {
				return
			}
			candidate := domain.TimeInterval{Start: startTS, End: endTS}

			if HasConflict(existing, candidate) {
				continue
			}
			if !yield(candidate) {
				return
			}
		}
	}, nil
}

// GenerateAvailableSlots collects AvailableSlots into a slice.
// Returns an empty, non-nil slice when nothing is free.
func GenerateAvailableSlots(cfg *domain.SlotGridConfig, existing []domain.BookedSlot) ([]domain.TimeInterval, error) {
	seq, err := AvailableSlots(cfg, existing)
	if err != nil {
		return nil, err
	}

	free := slices.Collect(seq)
	if free == nil {
		free = []domain.TimeInterval{}
	}
	return free, nil
}

// CheckRequest input of CheckAndListSlots
type CheckRequest struct {
	RoomID    int64
	Date      time.Time
	Config    *domain.SlotGridConfig
	Existing  []domain.BookedSlot
	Candidate *domain.TimeInterval // optional: nil = list only
}

// Availability verdict for a room on a date
type Availability struct {
	Conflict     bool
	ConflictWith *domain.BookedSlot
	FreeSlots    []domain.TimeInterval
}

// CheckAndListSlots checks the optional candidate and lists the free slots of the grid.
// Slots of another room or date are ignored.
func CheckAndListSlots(req CheckRequest) (*Availability, error) {
	relevant := make([]domain.BookedSlot, 0, len(req.Existing))
	for _, s := range req.Existing {
		if s.RoomID == req.RoomID && domain.SameDay(s.Date, req.Date) {
			relevant = append(relevant, s)
		}
	}

	free, err := GenerateAvailableSlots(req.Config, relevant)
	if err != nil {
		return nil, err
	}

	result := &Availability{FreeSlots: free}
	if req.Candidate != nil {
		if slot, found := FindConflict(relevant, *req.Candidate); found {
			result.Conflict = true
			result.ConflictWith = &slot
		}
	}

	return result, nil
}
