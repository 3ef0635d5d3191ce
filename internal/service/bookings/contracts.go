package bookings

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	slotsModels "github.com/m04kA/SMC-VenueBookingService/internal/service/slots/models"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.SlotStatus) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория занятых слотов
type SlotRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.BookedSlot, error)
}

// SlotStatusUpdater смена статуса слота по машине состояний (service/slots)
type SlotStatusUpdater interface {
	UpdateStatus(ctx context.Context, slotID int64, req *slotsModels.UpdateStatusRequest) (*slotsModels.SlotResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
