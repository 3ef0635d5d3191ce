package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/engine/slots"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/config"
	slotRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-VenueBookingService/pkg/metrics"
)

// UseCase use case для переноса бронирования на другое время
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	configRepo   ConfigRepository
	defaultGrid  DefaultGridFunc
	txManager    TransactionManager
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	configRepo ConfigRepository,
	defaultGrid DefaultGridFunc,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		configRepo:   configRepo,
		defaultGrid:  defaultGrid,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
// Собственный слот бронирования не считается конфликтом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d by user=%d to date=%s, time=%s",
		req.BookingID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	if domain.DateOnly(req.Date).Before(domain.DateOnly(uc.timeProvider.Now())) {
		uc.logger.Warn("RescheduleBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование и его слот (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			uc.logger.Warn("RescheduleBooking: user=%d is not the owner of booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d has status=%s", booking.ID, booking.Status)
			return ErrCannotReschedule
		}

		own, err := uc.slotRepo.GetByBookingID(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get slot of booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}
		if !own.IsBlocking() {
			uc.logger.Warn("RescheduleBooking: slot id=%d has status=%s", own.ID, own.Status)
			return ErrCannotReschedule
		}

		// 2. Новый интервал той же длительности внутри действующей сетки
		config, err := uc.resolveConfig(txCtx, booking.PackageID, booking.RoomID)
		if err != nil {
			return err
		}

		candidate, err := domain.NewTimeInterval(req.StartTime, booking.DurationMinutes, domain.DurationUnitMinutes)
		if err != nil || !candidate.Within(config.Grid()) {
			uc.logger.Warn("RescheduleBooking: %s for %d minutes is outside grid %s",
				req.StartTime, booking.DurationMinutes, config.Grid())
			return ErrOutsideGrid
		}

		// 3. Конфликты на новую дату без собственного слота
		existing, err := uc.slotRepo.GetByRoomAndDate(txCtx, domain.SlotsFilter{RoomID: booking.RoomID, Date: req.Date})
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get booked slots: %v", err)
			return fmt.Errorf("%w: failed to get booked slots: %v", ErrInternal, err)
		}

		if err := slots.CheckConflict(slots.ExcludeSlot(existing, own.ID), candidate); err != nil {
			uc.metrics.IncSlotConflict(metrics.ConflictSourcePrecheck)
			uc.logger.Warn("RescheduleBooking: %v", err)
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}

		// 4. Сохраняем слот и бронирование
		if err := uc.slotRepo.UpdateSchedule(txCtx, own.ID, req.Date, candidate); err != nil {
			if errors.Is(err, slotRepo.ErrSlotAlreadyBooked) {
				uc.metrics.IncSlotConflict(metrics.ConflictSourceConstraint)
				uc.logger.Warn("RescheduleBooking: slot %s was taken concurrently", candidate)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("RescheduleBooking: failed to update slot id=%d: %v", own.ID, err)
			return fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.UpdateSchedule(txCtx, booking.ID, req.Date, candidate.Start); err != nil {
			uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		booking.BookingDate = domain.DateOnly(req.Date)
		booking.StartTime = candidate.Start
		result = &Response{Booking: booking, SlotID: own.ID}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s",
		result.Booking.ID, result.Booking.BookingDate.Format(domain.DateFormat), result.Booking.StartTime)
	return result, nil
}

// resolveConfig сетка комнаты, пакета или сетка по умолчанию
func (uc *UseCase) resolveConfig(ctx context.Context, packageID, roomID int64) (*domain.SlotGridConfig, error) {
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, packageID, &roomID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("RescheduleBooking: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	if config == nil {
		config = uc.defaultGrid(packageID)
	}

	if err := config.Validate(); err != nil {
		uc.logger.Error("RescheduleBooking: config id=%d is invalid: %v", config.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	return config, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}
