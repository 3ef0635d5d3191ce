package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/engine/pricing"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
)

// UseCase use case для расчета цены пакета или аттракциона
type UseCase struct {
	ruleRepo      RuleRepository
	catalogClient CatalogClient
	metrics       MetricsCollector
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ruleRepo RuleRepository,
	catalogClient CatalogClient,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		ruleRepo:      ruleRepo,
		catalogClient: catalogClient,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет расчет цены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: entity=%s/%d, date=%s", req.EntityType, req.EntityID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	entityType, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	date := req.Date
	if date.IsZero() {
		date = uc.timeProvider.Now()
	}
	date = domain.DateOnly(date)

	// 2. Базовая цена
	base, err := uc.baseAmount(ctx, entityType, req)
	if err != nil {
		return nil, err
	}

	// 3. Активные правила сущности
	target := domain.PricingTarget{Type: entityType, ID: req.EntityID}
	rules, err := uc.ruleRepo.GetActiveForEntity(ctx, target, date)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to get pricing rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get pricing rules: %v", ErrInternal, err)
	}

	// Некорректные правила не отбрасываются: движок ограничивает суммы сам
	for i := range rules {
		if err := rules[i].Validate(); err != nil {
			uc.logger.Warn("QuotePrice: rule id=%d is invalid, amounts will be clamped: %v", rules[i].ID, err)
		}
	}

	// 4. Расчет
	breakdown := pricing.QuotePrice(pricing.QuoteRequest{
		EntityType: entityType,
		EntityID:   req.EntityID,
		BaseAmount: base,
		Date:       date,
		Time:       req.Time,
		Rules:      rules,
	})
	uc.metrics.IncPriceQuote(string(entityType))

	uc.logger.Info("QuotePrice: entity=%s/%d base=%.2f final=%.2f with %d steps",
		entityType, req.EntityID, breakdown.BaseAmount, breakdown.FinalAmount, len(breakdown.Steps))

	return &Response{
		EntityType: entityType,
		EntityID:   req.EntityID,
		Date:       date,
		Breakdown:  breakdown,
	}, nil
}

// baseAmount берет цену из запроса или из каталога
func (uc *UseCase) baseAmount(ctx context.Context, entityType domain.EntityType, req *Request) (float64, error) {
	if req.BaseAmount != nil {
		return *req.BaseAmount, nil
	}

	switch entityType {
	case domain.EntityTypePackage:
		pkg, err := uc.catalogClient.GetPackage(ctx, req.EntityID)
		if err != nil {
			if errors.Is(err, catalogservice.ErrPackageNotFound) {
				uc.logger.Warn("QuotePrice: package id=%d not found", req.EntityID)
				return 0, ErrEntityNotFound
			}
			uc.logger.Error("QuotePrice: failed to get package id=%d: %v", req.EntityID, err)
			return 0, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
		}
		return pkg.Price, nil
	default:
		attraction, err := uc.catalogClient.GetAttraction(ctx, req.EntityID)
		if err != nil {
			if errors.Is(err, catalogservice.ErrAttractionNotFound) {
				uc.logger.Warn("QuotePrice: attraction id=%d not found", req.EntityID)
				return 0, ErrEntityNotFound
			}
			uc.logger.Error("QuotePrice: failed to get attraction id=%d: %v", req.EntityID, err)
			return 0, fmt.Errorf("%w: failed to get attraction: %v", ErrInternal, err)
		}
		return attraction.Price, nil
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.EntityType, error) {
	entityType := domain.EntityType(req.EntityType)
	if !entityType.IsValid() {
		return "", fmt.Errorf("%w: entityType must be package or attraction", ErrInvalidInput)
	}

	if req.EntityID <= 0 {
		return "", fmt.Errorf("%w: entityID must be positive", ErrInvalidInput)
	}

	if req.BaseAmount != nil && *req.BaseAmount < 0 {
		return "", fmt.Errorf("%w: baseAmount must not be negative", ErrInvalidInput)
	}

	if req.Time != nil {
		if err := req.Time.Validate(); err != nil {
			return "", fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
		}
	}

	return entityType, nil
}
