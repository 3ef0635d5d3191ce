package update_slot_status

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots/models"
)

type SlotService interface {
	UpdateStatus(ctx context.Context, slotID int64, req *models.UpdateStatusRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
