package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// toSlots конвертирует интервалы движка в модели ответа.
// Для сегодняшней даты отбрасываются слоты, начало которых уже прошло.
func toSlots(free []domain.TimeInterval, date, now time.Time) []Slot {
	var notBefore types.TimeString
	if domain.SameDay(date, now) {
		notBefore = types.NewTimeString(now)
	}

	slots := make([]Slot, 0, len(free))
	for _, interval := range free {
		if notBefore != "" && interval.Start.IsBefore(notBefore) {
			continue
		}
		slots = append(slots, Slot{StartTime: interval.Start, EndTime: interval.End})
	}

	return slots
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}
