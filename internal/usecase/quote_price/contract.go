package quote_price

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
)

// RuleRepository интерфейс репозитория правил ценообразования
type RuleRepository interface {
	GetActiveForEntity(ctx context.Context, target domain.PricingTarget, date time.Time) ([]domain.PricingRule, error)
}

// CatalogClient интерфейс клиента каталога (базовые цены)
type CatalogClient interface {
	GetPackage(ctx context.Context, packageID int64) (*catalogservice.Package, error)
	GetAttraction(ctx context.Context, attractionID int64) (*catalogservice.Attraction, error)
}

// MetricsCollector доменные метрики
type MetricsCollector interface {
	IncPriceQuote(entityType string)
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
