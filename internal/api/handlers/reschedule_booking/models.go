package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	BookingDate string `json:"bookingDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	*bookingModels.BookingResponse
	SlotID int64 `json:"slotId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(userID, bookingID int64) (*rescheduleBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		UserID:    userID,
		BookingID: bookingID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingResponse: bookingModels.FromDomainBooking(resp.Booking),
		SlotID:          resp.SlotID,
	}
}
