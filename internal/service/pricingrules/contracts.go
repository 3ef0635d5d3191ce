package pricingrules

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/pricingrule"
)

// RuleRepository интерфейс репозитория правил ценообразования
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
	GetByID(ctx context.Context, id int64) (*domain.PricingRule, error)
	List(ctx context.Context, filter ruleRepo.ListFilter) ([]domain.PricingRule, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
