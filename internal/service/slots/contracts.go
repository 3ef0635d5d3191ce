package slots

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория занятых слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookedSlot, error)
	GetByRoomAndDate(ctx context.Context, filter domain.SlotsFilter) ([]domain.BookedSlot, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
