package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// SlotGridConfig represents the scheduling grid of a package
// Supports hierarchical configuration:
// 1. Package in a specific room (package_id, room_id)
// 2. Package-wide (package_id, NULL)
type SlotGridConfig struct {
	ID                  int64
	PackageID           int64
	RoomID              *int64 // NULL = config for all rooms of the package
	GridStart           types.TimeString
	GridEnd             types.TimeString
	IntervalMinutes     int
	ServiceDuration     int
	ServiceDurationUnit DurationUnit
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultSlotGridConfig returns the built-in grid for a package
func DefaultSlotGridConfig(packageID int64) *SlotGridConfig {
	return &SlotGridConfig{
		PackageID:           packageID,
		GridStart:           DefaultGridStart,
		GridEnd:             DefaultGridEnd,
		IntervalMinutes:     DefaultIntervalMinutes,
		ServiceDuration:     DefaultServiceDuration,
		ServiceDurationUnit: DefaultServiceDurationUnit,
	}
}

// IsRoomSpecific returns true if the config overrides the grid for one room
func (c *SlotGridConfig) IsRoomSpecific() bool {
	return c.RoomID != nil
}

// ServiceDurationMinutes returns the service duration normalized to minutes
func (c *SlotGridConfig) ServiceDurationMinutes() (int, error) {
	return c.ServiceDurationUnit.ToMinutes(c.ServiceDuration)
}

// Grid returns the whole grid as an interval
func (c *SlotGridConfig) Grid() TimeInterval {
	return TimeInterval{Start: c.GridStart, End: c.GridEnd}
}

// Validate checks the grid invariants.
// A service duration longer than the grid is valid: such a grid simply has no slots.
func (c *SlotGridConfig) Validate() error {
	if err := c.GridStart.Validate(); err != nil {
		return fmt.Errorf("%w: grid start: %v", ErrInvalidConfiguration, err)
	}
	if err := c.GridEnd.Validate(); err != nil {
		return fmt.Errorf("%w: grid end: %v", ErrInvalidConfiguration, err)
	}
	if !c.GridStart.IsBefore(c.GridEnd) {
		return fmt.Errorf("%w: grid start %s must be before grid end %s", ErrInvalidConfiguration, c.GridStart, c.GridEnd)
	}
	if c.IntervalMinutes <= 0 || c.IntervalMinutes > types.MinutesPerDay {
		return fmt.Errorf("%w: interval must be within (0, %d], got %d", ErrInvalidConfiguration, types.MinutesPerDay, c.IntervalMinutes)
	}
	if !c.ServiceDurationUnit.IsValid() {
		return fmt.Errorf("%w: unknown service duration unit %q", ErrInvalidConfiguration, c.ServiceDurationUnit)
	}
	if c.ServiceDuration <= 0 {
		return fmt.Errorf("%w: service duration must be positive, got %d", ErrInvalidConfiguration, c.ServiceDuration)
	}
	if _, err := c.ServiceDurationMinutes(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}
