package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// UpdateStatusRequest запрос на смену статуса слота
type UpdateStatusRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status"`
}

// ListRoomSlotsRequest запрос расписания комнаты на дату
type ListRoomSlotsRequest struct {
	UserID   int64
	RoomID   int64
	Date     time.Time
	Statuses []string // Если пусто - только блокирующие
}

// SlotResponse занятый слот
type SlotResponse struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"bookingId"`
	RoomID    int64     `json:"roomId"`
	PackageID int64     `json:"packageId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.BookedSlot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:        s.ID,
		BookingID: s.BookingID,
		RoomID:    s.RoomID,
		PackageID: s.PackageID,
		Date:      s.Date.Format(domain.DateFormat),
		StartTime: s.Interval.Start.String(),
		EndTime:   s.Interval.End.String(),
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []domain.BookedSlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for i := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(&slots[i]))
	}

	return resp
}
