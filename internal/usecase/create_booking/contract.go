package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория занятых слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.BookedSlot) (*domain.BookedSlot, error)
	GetByRoomAndDate(ctx context.Context, filter domain.SlotsFilter) ([]domain.BookedSlot, error)
}

// ConfigRepository интерфейс репозитория сетки слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, packageID int64, roomID *int64) (*domain.SlotGridConfig, error)
}

// RuleRepository интерфейс репозитория правил ценообразования
type RuleRepository interface {
	GetActiveForEntity(ctx context.Context, target domain.PricingTarget, date time.Time) ([]domain.PricingRule, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetPackage(ctx context.Context, packageID int64) (*catalogservice.Package, error)
}

// MetricsCollector доменные метрики
type MetricsCollector interface {
	IncSlotConflict(source string)
	IncPriceQuote(entityType string)
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
