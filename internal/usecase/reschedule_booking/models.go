package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	UserID    int64
	BookingID int64
	Date      time.Time        // Новая дата (без времени)
	StartTime types.TimeString // Новое время начала
}

// Response модель ответа с перенесенным бронированием
// Длительность и цена остаются такими, какими были при бронировании
type Response struct {
	Booking *domain.Booking
	SlotID  int64
}
