package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
)

// SlotRepository интерфейс репозитория занятых слотов
type SlotRepository interface {
	// GetByRoomAndDate получает блокирующие слоты комнаты на дату
	GetByRoomAndDate(ctx context.Context, filter domain.SlotsFilter) ([]domain.BookedSlot, error)
}

// ConfigRepository интерфейс репозитория сетки слотов
type ConfigRepository interface {
	// GetConfigWithHierarchy получает сетку с учетом иерархии (комната > пакет)
	GetConfigWithHierarchy(ctx context.Context, packageID int64, roomID *int64) (*domain.SlotGridConfig, error)
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetPackage(ctx context.Context, packageID int64) (*catalogservice.Package, error)
}

// DefaultGridFunc сетка по умолчанию из конфигурации сервиса
type DefaultGridFunc func(packageID int64) *domain.SlotGridConfig

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
