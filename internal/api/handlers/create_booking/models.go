package create_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PackageID   int64   `json:"packageId"`
	RoomID      int64   `json:"roomId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "10:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	*bookingModels.BookingResponse
	SlotID int64 `json:"slotId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		PackageID: r.PackageID,
		RoomID:    r.RoomID,
		Date:      bookingDate,
		StartTime: startTime,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingResponse: bookingModels.FromDomainBooking(resp.Booking),
		SlotID:          resp.SlotID,
	}
}
