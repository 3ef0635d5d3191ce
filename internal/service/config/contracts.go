package config

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
)

// ConfigRepository интерфейс репозитория сетки слотов
type ConfigRepository interface {
	Upsert(ctx context.Context, config *domain.SlotGridConfig) (*domain.SlotGridConfig, error)
	GetConfigWithHierarchy(ctx context.Context, packageID int64, roomID *int64) (*domain.SlotGridConfig, error)
	GetAllByPackage(ctx context.Context, packageID int64) ([]*domain.SlotGridConfig, error)
	DeleteByPackageAndRoom(ctx context.Context, packageID int64, roomID *int64) error
}

// CatalogClient интерфейс клиента CatalogService
type CatalogClient interface {
	GetPackage(ctx context.Context, packageID int64) (*catalogservice.Package, error)
}

// DefaultGridFunc сетка по умолчанию из конфигурации сервиса
type DefaultGridFunc func(packageID int64) *domain.SlotGridConfig

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
