package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/engine/pricing"
	"github.com/m04kA/SMC-VenueBookingService/internal/engine/slots"
	configRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/config"
	slotRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	configRepo    ConfigRepository
	ruleRepo      RuleRepository
	catalogClient CatalogClient
	defaultGrid   DefaultGridFunc
	txManager     TransactionManager
	metrics       MetricsCollector
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	configRepo ConfigRepository,
	ruleRepo RuleRepository,
	catalogClient CatalogClient,
	defaultGrid DefaultGridFunc,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		configRepo:    configRepo,
		ruleRepo:      ruleRepo,
		catalogClient: catalogClient,
		defaultGrid:   defaultGrid,
		txManager:     txManager,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликта и вставка слота идут в одной сериализуемой транзакции.
// Гонку между проверкой и вставкой ловит exclusion constraint в БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, package=%d, room=%d, date=%s, time=%s",
		req.UserID, req.PackageID, req.RoomID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом
	now := uc.timeProvider.Now()
	if domain.DateOnly(req.Date).Before(domain.DateOnly(now)) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем пакет и проверяем комнату
	pkg, err := uc.catalogClient.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrPackageNotFound) {
			uc.logger.Warn("CreateBooking: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CreateBooking: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}
	if !pkg.HasRoom(req.RoomID) {
		uc.logger.Warn("CreateBooking: room id=%d is not part of package id=%d", req.RoomID, req.PackageID)
		return nil, ErrRoomNotInPackage
	}

	var result *Response

	// 4. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Сетка с учетом иерархии
		config, err := uc.resolveConfig(txCtx, req.PackageID, req.RoomID)
		if err != nil {
			return err
		}

		// 4.2. Кандидат с длительностью услуги, целиком внутри сетки
		candidate, err := domain.NewTimeInterval(req.StartTime, config.ServiceDuration, config.ServiceDurationUnit)
		if err != nil {
			uc.logger.Warn("CreateBooking: invalid candidate %s: %v", req.StartTime, err)
			return fmt.Errorf("%w: %v", ErrOutsideGrid, err)
		}
		if !candidate.Within(config.Grid()) {
			uc.logger.Warn("CreateBooking: candidate %s is outside grid %s", candidate, config.Grid())
			return ErrOutsideGrid
		}

		// 4.3. Занятые слоты комнаты с блокировкой (FOR UPDATE)
		existing, err := uc.slotRepo.GetByRoomAndDate(txCtx, domain.SlotsFilter{RoomID: req.RoomID, Date: req.Date})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get booked slots: %v", err)
			return fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
		}

		// 4.4. Проверка конфликта
		if err := slots.CheckConflict(existing, candidate); err != nil {
			uc.metrics.IncSlotConflict(metrics.ConflictSourcePrecheck)
			uc.logger.Warn("CreateBooking: %v", err)
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}

		// 4.5. Расчет цены
		breakdown, err := uc.price(txCtx, pkg, req.Date, req.StartTime)
		if err != nil {
			return err
		}

		// 4.6. Создаем бронирование и слот
		booking, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:          req.UserID,
			PackageID:       req.PackageID,
			RoomID:          req.RoomID,
			BookingDate:     domain.DateOnly(req.Date),
			StartTime:       candidate.Start,
			DurationMinutes: candidate.DurationMinutes(),
			Status:          domain.SlotStatusBooked,
			PackageName:     pkg.Name,
			BaseAmount:      breakdown.BaseAmount,
			FinalAmount:     breakdown.FinalAmount,
			PriceBreakdown:  breakdown,
			Notes:           req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		slot, err := uc.slotRepo.Create(txCtx, &domain.BookedSlot{
			BookingID: booking.ID,
			RoomID:    req.RoomID,
			PackageID: req.PackageID,
			Date:      domain.DateOnly(req.Date),
			Interval:  candidate,
			Status:    domain.SlotStatusBooked,
		})
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotAlreadyBooked) {
				uc.metrics.IncSlotConflict(metrics.ConflictSourceConstraint)
				uc.logger.Warn("CreateBooking: slot %s was taken concurrently", candidate)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create slot: %v", err)
			return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
		}

		result = &Response{Booking: booking, SlotID: slot.ID}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, slot id=%d, final=%.2f",
		result.Booking.ID, result.SlotID, result.Booking.FinalAmount)
	return result, nil
}

// resolveConfig сетка комнаты, пакета или сетка по умолчанию
func (uc *UseCase) resolveConfig(ctx context.Context, packageID, roomID int64) (*domain.SlotGridConfig, error) {
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, packageID, &roomID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("CreateBooking: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	if config == nil {
		config = uc.defaultGrid(packageID)
		uc.logger.Info("CreateBooking: using default grid for package=%d", packageID)
	} else {
		uc.logger.Info("CreateBooking: using config id=%d", config.ID)
	}

	if err := config.Validate(); err != nil {
		uc.logger.Error("CreateBooking: config id=%d is invalid: %v", config.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return config, nil
}

// price считает цену пакета на дату и время начала
func (uc *UseCase) price(ctx context.Context, pkg *catalogservice.Package, date time.Time, start types.TimeString) (domain.PriceBreakdown, error) {
	target := domain.PricingTarget{Type: domain.EntityTypePackage, ID: pkg.ID}

	rules, err := uc.ruleRepo.GetActiveForEntity(ctx, target, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get pricing rules: %v", err)
		return domain.PriceBreakdown{}, fmt.Errorf("%w: failed to get pricing rules: %v", ErrInternal, err)
	}

	breakdown := pricing.ComputeBreakdown(pkg.Price, target, date, &start, rules)
	uc.metrics.IncPriceQuote(string(domain.EntityTypePackage))
	uc.logger.Info("CreateBooking: priced package=%d base=%.2f final=%.2f with %d steps",
		pkg.ID, breakdown.BaseAmount, breakdown.FinalAmount, len(breakdown.Steps))

	return breakdown, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
