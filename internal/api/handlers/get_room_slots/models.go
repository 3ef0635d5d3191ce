package get_room_slots

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// status принимает список через запятую: "booked,no_show"
func ToServiceRequest(roomID, userID int64, dateStr, statusStr string) (*models.ListRoomSlotsRequest, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &models.ListRoomSlotsRequest{
		UserID: userID,
		RoomID: roomID,
		Date:   date,
	}

	if statusStr != "" {
		for _, status := range strings.Split(statusStr, ",") {
			if status = strings.TrimSpace(status); status != "" {
				req.Statuses = append(req.Statuses, status)
			}
		}
	}

	return req, nil
}
