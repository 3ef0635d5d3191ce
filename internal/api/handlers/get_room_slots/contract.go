package get_room_slots

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots/models"
)

type SlotService interface {
	ListByRoom(ctx context.Context, req *models.ListRoomSlotsRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
