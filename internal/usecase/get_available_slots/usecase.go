package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/engine/slots"
	configRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/config"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/catalogservice"
)

// UseCase use case для получения свободных слотов комнаты
type UseCase struct {
	slotRepo      SlotRepository
	configRepo    ConfigRepository
	catalogClient CatalogClient
	defaultGrid   DefaultGridFunc
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	configRepo ConfigRepository,
	catalogClient CatalogClient,
	defaultGrid DefaultGridFunc,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		configRepo:    configRepo,
		catalogClient: catalogClient,
		defaultGrid:   defaultGrid,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Если передан StartTime, дополнительно проверяет кандидата на конфликт
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%d, package=%d, date=%s, startTime=%v",
		req.RoomID, req.PackageID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 2. Проверяем пакет и комнату в каталоге
	pkg, err := uc.catalogClient.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrPackageNotFound) {
			uc.logger.Warn("GetAvailableSlots: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}
	if !pkg.HasRoom(req.RoomID) {
		uc.logger.Warn("GetAvailableSlots: room id=%d is not part of package id=%d", req.RoomID, req.PackageID)
		return nil, ErrRoomNotInPackage
	}

	// 3. Получаем сетку с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.PackageID, &req.RoomID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if config == nil {
		config = uc.defaultGrid(req.PackageID)
		uc.logger.Info("GetAvailableSlots: using default grid for package=%d", req.PackageID)
	} else {
		uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	}

	durationMinutes, err := config.ServiceDurationMinutes()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: config id=%d is invalid: %v", config.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	// 4. Кандидат имеет длительность услуги из сетки
	var candidate *domain.TimeInterval
	if req.StartTime != nil {
		interval, err := domain.NewTimeInterval(*req.StartTime, config.ServiceDuration, config.ServiceDurationUnit)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: invalid candidate %s: %v", *req.StartTime, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		candidate = &interval
	}

	// 5. Получаем занятые слоты комнаты на дату
	existing, err := uc.slotRepo.GetByRoomAndDate(ctx, domain.SlotsFilter{RoomID: req.RoomID, Date: req.Date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
	}

	// 6. Проверяем кандидата и строим список свободных слотов
	availability, err := slots.CheckAndListSlots(slots.CheckRequest{
		RoomID:    req.RoomID,
		Date:      req.Date,
		Config:    config,
		Existing:  existing,
		Candidate: candidate,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidConfiguration) {
			uc.logger.Error("GetAvailableSlots: config id=%d is invalid: %v", config.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:            req.Date,
		RoomID:          req.RoomID,
		PackageID:       req.PackageID,
		IntervalMinutes: config.IntervalMinutes,
		DurationMinutes: durationMinutes,
		Slots:           toSlots(availability.FreeSlots, req.Date, now),
	}

	if candidate != nil {
		resp.Candidate = &Candidate{
			StartTime: candidate.Start,
			EndTime:   candidate.End,
			Available: !availability.Conflict && candidate.Within(config.Grid()),
		}
		if availability.ConflictWith != nil {
			resp.Candidate.ConflictSlotID = &availability.ConflictWith.ID
		}
	}

	uc.logger.Info("GetAvailableSlots: %d free slots for room=%d, date=%s",
		len(resp.Slots), req.RoomID, req.Date.Format(domain.DateFormat))
	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
