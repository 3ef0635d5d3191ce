package bookings

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
	slotsService "github.com/m04kA/SMC-VenueBookingService/internal/service/slots"
	slotsModels "github.com/m04kA/SMC-VenueBookingService/internal/service/slots/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	slotStatus  SlotStatusUpdater
	staffIDs    []int64
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	slotStatus SlotStatusUpdater,
	staffIDs []int64,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		slotStatus:  slotStatus,
		staffIDs:    staffIDs,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, сотрудник - любое
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userID && !s.isStaff(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.SlotStatus
	if req.Status != nil {
		status, err := domain.ParseSlotStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование через его слот
// Правила доступа и переходов - в service/slots
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.IsActive() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	slot, err := s.slotRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Error("Cancel: booking id=%d has no slot", bookingID)
		}
		return nil, fmt.Errorf("%w: Cancel - get slot: %v", ErrInternal, err)
	}

	_, err = s.slotStatus.UpdateStatus(ctx, slot.ID, &slotsModels.UpdateStatusRequest{
		UserID: req.UserID,
		Status: string(domain.SlotStatusCancelled),
	})
	switch {
	case err == nil:
	case errors.Is(err, slotsService.ErrAccessDenied):
		return nil, ErrAccessDenied
	case errors.Is(err, slotsService.ErrInvalidStatusTransition):
		return nil, ErrCannotCancel
	default:
		return nil, fmt.Errorf("%w: Cancel - update slot status: %v", ErrInternal, err)
	}

	booking.Status = domain.SlotStatusCancelled
	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(booking), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) isStaff(userID int64) bool {
	return slices.Contains(s.staffIDs, userID)
}
