package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string             `json:"date"`
	RoomID          int64              `json:"roomId"`
	PackageID       int64              `json:"packageId"`
	IntervalMinutes int                `json:"intervalMinutes"`
	DurationMinutes int                `json:"durationMinutes"`
	Candidate       *CandidateResponse `json:"candidate,omitempty"`
	Slots           []AvailableSlot    `json:"slots"`
}

// CandidateResponse результат проверки запрошенного времени
type CandidateResponse struct {
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Available      bool   `json:"available"`
	ConflictSlotID *int64 `json:"conflictSlotId,omitempty"`
}

// AvailableSlot модель свободного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	var candidate *CandidateResponse
	if resp.Candidate != nil {
		candidate = &CandidateResponse{
			StartTime:      resp.Candidate.StartTime.String(),
			EndTime:        resp.Candidate.EndTime.String(),
			Available:      resp.Candidate.Available,
			ConflictSlotID: resp.Candidate.ConflictSlotID,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		RoomID:          resp.RoomID,
		PackageID:       resp.PackageID,
		IntervalMinutes: resp.IntervalMinutes,
		DurationMinutes: resp.DurationMinutes,
		Candidate:       candidate,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(roomID, packageID int64, dateStr, startTimeStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		RoomID:    roomID,
		PackageID: packageID,
		Date:      date,
	}

	// Время кандидата опционально
	if startTimeStr != "" {
		startTime, err := types.NewTimeStringFromString(startTimeStr)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	return req, nil
}
