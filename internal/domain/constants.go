package domain

import "github.com/m04kA/SMC-VenueBookingService/pkg/types"

// Default slot grid, used when neither the room nor the package has a config
const (
	DefaultGridStart              types.TimeString = "09:00"
	DefaultGridEnd                types.TimeString = "21:00"
	DefaultIntervalMinutes                         = 30
	DefaultServiceDuration                         = 60
	DefaultServiceDurationUnit                     = DurationUnitMinutes
	DefaultAdvanceBookingDays                      = 0 // 0 = unlimited
)

// Business validation constants
const (
	MinIntervalMinutes          = 5
	MaxIntervalMinutes          = 24 * 60
	MaxPercentage               = 100.0
	MinPercentage               = 0.0
	MinWeekday                  = 0 // Sunday
	MaxWeekday                  = 6 // Saturday
	MinDayOfMonth               = 1
	MaxDayOfMonth               = 31
	MaxRuleLabelLength          = 120
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingSlotStatuses statuses that occupy a room and participate in conflict detection
var BlockingSlotStatuses = []SlotStatus{
	SlotStatusBooked,
}

// TerminalSlotStatuses statuses without outgoing transitions
var TerminalSlotStatuses = []SlotStatus{
	SlotStatusCompleted,
	SlotStatusCancelled,
	SlotStatusNoShow,
}
