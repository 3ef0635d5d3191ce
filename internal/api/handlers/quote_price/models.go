package quote_price

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
	quotePrice "github.com/m04kA/SMC-VenueBookingService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// QuotePriceRequest HTTP request model
type QuotePriceRequest struct {
	EntityType string   `json:"entityType"` // package | attraction
	EntityID   int64    `json:"entityId"`
	BaseAmount *float64 `json:"baseAmount,omitempty"` // по умолчанию цена из каталога
	Date       *string  `json:"date,omitempty"`       // "2025-10-15", по умолчанию сегодня
	Time       *string  `json:"time,omitempty"`       // "18:30"
}

// QuotePriceResponse HTTP response model
type QuotePriceResponse struct {
	EntityType string `json:"entityType"`
	EntityID   int64  `json:"entityId"`
	Date       string `json:"date"`
	bookingModels.PriceBreakdownResponse
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuotePriceRequest) ToUseCaseRequest() (*quotePrice.Request, error) {
	req := &quotePrice.Request{
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		BaseAmount: r.BaseAmount,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = date
	}

	if r.Time != nil {
		at, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return nil, err
		}
		req.Time = &at
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuotePriceResponse {
	return &QuotePriceResponse{
		EntityType:             string(resp.EntityType),
		EntityID:               resp.EntityID,
		Date:                   resp.Date.Format(domain.DateFormat),
		PriceBreakdownResponse: bookingModels.FromDomainBreakdown(resp.Breakdown),
	}
}
