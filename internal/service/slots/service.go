package slots

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-VenueBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots/models"
)

// Service сервис для работы с занятыми слотами
type Service struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	staffIDs    []int64
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	staffIDs []int64,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		staffIDs:    staffIDs,
		logger:      logger,
	}
}

// GetByID получает слот по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	s.logger.Info("GetByID: fetching slot id=%d", id)

	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// ListByRoom расписание комнаты на дату
// Доступно только сотрудникам
func (s *Service) ListByRoom(ctx context.Context, req *models.ListRoomSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("ListByRoom: room=%d, date=%s by user=%d", req.RoomID, req.Date.Format(domain.DateFormat), req.UserID)

	if !s.isStaff(req.UserID) {
		s.logger.Warn("ListByRoom: user=%d is not staff", req.UserID)
		return nil, ErrAccessDenied
	}

	if req.RoomID <= 0 || req.Date.IsZero() {
		s.logger.Warn("ListByRoom: room and date are required")
		return nil, fmt.Errorf("%w: roomID and date are required", ErrInvalidInput)
	}

	filter := domain.SlotsFilter{RoomID: req.RoomID, Date: domain.DateOnly(req.Date)}
	for _, raw := range req.Statuses {
		status, err := domain.ParseSlotStatus(raw)
		if err != nil {
			s.logger.Warn("ListByRoom: invalid status filter=%s", raw)
			return nil, ErrInvalidStatus
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	slots, err := s.slotRepo.GetByRoomAndDate(ctx, filter)
	if err != nil {
		s.logger.Error("ListByRoom: repository error for room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: ListByRoom - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByRoom: found %d slots for room=%d", len(slots), req.RoomID)
	return models.FromDomainSlotList(slots), nil
}

// UpdateStatus переводит слот в новый статус по машине состояний
// Владелец бронирования может только отменить, сотрудник - любой переход.
// Статус дублируется в бронирование в той же транзакции.
func (s *Service) UpdateStatus(ctx context.Context, slotID int64, req *models.UpdateStatusRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateStatus: updating slot id=%d to status=%s by user=%d", slotID, req.Status, req.UserID)

	newStatus, err := domain.ParseSlotStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for slot id=%d", req.Status, slotID)
		return nil, ErrInvalidStatus
	}

	var updated *domain.BookedSlot
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Блокируем слот
		slot, err := s.slotRepo.GetByID(ctx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("UpdateStatus: slot id=%d not found", slotID)
				return ErrSlotNotFound
			}
			s.logger.Error("UpdateStatus: failed to get slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: UpdateStatus - get slot: %v", ErrInternal, err)
		}

		// 2. Проверяем права
		booking, err := s.bookingRepo.GetByID(ctx, slot.BookingID)
		if err != nil {
			s.logger.Error("UpdateStatus: failed to get booking id=%d of slot id=%d: %v", slot.BookingID, slotID, err)
			return fmt.Errorf("%w: UpdateStatus - get booking: %v", ErrInternal, err)
		}
		if !s.canSetStatus(booking, req.UserID, newStatus) {
			s.logger.Warn("UpdateStatus: user=%d is not allowed to set status=%s on slot id=%d", req.UserID, newStatus, slotID)
			return ErrAccessDenied
		}

		// 3. Проверяем переход
		if err := slot.TransitionTo(newStatus); err != nil {
			s.logger.Warn("UpdateStatus: slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: %v", ErrInvalidStatusTransition, err)
		}

		// 4. Сохраняем слот и бронирование
		if err := s.slotRepo.UpdateStatus(ctx, slotID, newStatus); err != nil {
			s.logger.Error("UpdateStatus: failed to update slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: UpdateStatus - update slot: %v", ErrInternal, err)
		}
		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, newStatus); err != nil {
			s.logger.Error("UpdateStatus: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: UpdateStatus - update booking: %v", ErrInternal, err)
		}

		updated = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: slot id=%d moved to status=%s", slotID, newStatus)
	return models.FromDomainSlot(updated), nil
}

// Delete физически удаляет слот вместе с его бронированием
// Доступно только сотрудникам. Обычный путь освобождения комнаты - отмена.
func (s *Service) Delete(ctx context.Context, slotID int64, userID int64) error {
	s.logger.Info("Delete: deleting slot id=%d by user=%d", slotID, userID)

	if !s.isStaff(userID) {
		s.logger.Warn("Delete: user=%d is not staff", userID)
		return ErrAccessDenied
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		slot, err := s.slotRepo.GetByID(ctx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("Delete: slot id=%d not found", slotID)
				return ErrSlotNotFound
			}
			s.logger.Error("Delete: failed to get slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: Delete - get slot: %v", ErrInternal, err)
		}

		if err := s.slotRepo.Delete(ctx, slotID); err != nil {
			s.logger.Error("Delete: failed to delete slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: Delete - delete slot: %v", ErrInternal, err)
		}

		// Бронирование без слота не может быть ни отменено, ни перенесено
		if err := s.bookingRepo.Delete(ctx, slot.BookingID); err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Error("Delete: failed to delete booking id=%d of slot id=%d: %v", slot.BookingID, slotID, err)
			return fmt.Errorf("%w: Delete - delete booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted slot id=%d", slotID)
	return nil
}

// canSetStatus владелец может отменить своё бронирование, сотрудник - всё
func (s *Service) canSetStatus(booking *domain.Booking, userID int64, status domain.SlotStatus) bool {
	if s.isStaff(userID) {
		return true
	}
	return booking.UserID == userID && status == domain.SlotStatusCancelled
}

func (s *Service) isStaff(userID int64) bool {
	return slices.Contains(s.staffIDs, userID)
}
