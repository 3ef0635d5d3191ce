package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id int64, date time.Time, start types.TimeString) error
}

// SlotRepository интерфейс репозитория занятых слотов
type SlotRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.BookedSlot, error)
	GetByRoomAndDate(ctx context.Context, filter domain.SlotsFilter) ([]domain.BookedSlot, error)
	UpdateSchedule(ctx context.Context, id int64, date time.Time, interval domain.TimeInterval) error
}

// ConfigRepository интерфейс репозитория сетки слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, packageID int64, roomID *int64) (*domain.SlotGridConfig, error)
}

// MetricsCollector доменные метрики
type MetricsCollector interface {
	IncSlotConflict(source string)
}

// DefaultGridFunc сетка по умолчанию из конфигурации сервиса
type DefaultGridFunc func(packageID int64) *domain.SlotGridConfig

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
