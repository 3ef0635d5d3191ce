package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID int64 `json:"-"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// PriceStepResponse одно примененное правило
type PriceStepResponse struct {
	RuleID int64   `json:"ruleId"`
	Label  string  `json:"label"`
	Kind   string  `json:"kind"`
	Delta  float64 `json:"delta"`
}

// PriceBreakdownResponse расшифровка цены
type PriceBreakdownResponse struct {
	BaseAmount         float64             `json:"baseAmount"`
	Steps              []PriceStepResponse `json:"steps"`
	InclusiveFeesTotal float64             `json:"inclusiveFeesTotal"`
	FinalAmount        float64             `json:"finalAmount"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	PackageID       int64  `json:"packageId"`
	RoomID          int64  `json:"roomId"`
	BookingDate     string `json:"bookingDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	PackageName    string                 `json:"packageName"`
	BaseAmount     float64                `json:"baseAmount"`
	FinalAmount    float64                `json:"finalAmount"`
	PriceBreakdown PriceBreakdownResponse `json:"priceBreakdown"`
	Notes          *string                `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBreakdown конвертирует расшифровку цены в DTO
func FromDomainBreakdown(b domain.PriceBreakdown) PriceBreakdownResponse {
	steps := make([]PriceStepResponse, len(b.Steps))
	for i, step := range b.Steps {
		steps[i] = PriceStepResponse{
			RuleID: step.RuleID,
			Label:  step.Label,
			Kind:   string(step.Kind),
			Delta:  step.Delta,
		}
	}

	return PriceBreakdownResponse{
		BaseAmount:         b.BaseAmount,
		Steps:              steps,
		InclusiveFeesTotal: b.InclusiveFeesTotal(),
		FinalAmount:        b.FinalAmount,
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		PackageID:       b.PackageID,
		RoomID:          b.RoomID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PackageName:     b.PackageName,
		BaseAmount:      b.BaseAmount,
		FinalAmount:     b.FinalAmount,
		PriceBreakdown:  FromDomainBreakdown(b.PriceBreakdown),
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
