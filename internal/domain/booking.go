package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Booking represents a room booking of a package.
// The room occupancy itself lives in BookedSlot; Booking keeps the commercial side.
type Booking struct {
	ID              int64
	UserID          int64
	PackageID       int64
	RoomID          int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          SlotStatus

	// Denormalized data for history
	PackageName    string
	BaseAmount     float64
	FinalAmount    float64
	PriceBreakdown PriceBreakdown
	Notes          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its room
func (b *Booking) IsActive() bool {
	return b.Status.IsBlocking()
}

// CanBeRescheduled returns true if the booking time can still be changed
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == SlotStatusBooked
}

// SlotsFilter selects the slots of one room on one date
type SlotsFilter struct {
	RoomID   int64
	Date     time.Time
	Statuses []SlotStatus // empty means blocking statuses only
}
