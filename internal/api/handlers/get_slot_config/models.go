package get_slot_config

import (
	"strconv"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/config/models"
)

// ToServiceRequest формирует запрос к сервису из URL и query параметров
func ToServiceRequest(packageID int64, roomIDStr string) (*models.GetConfigRequest, error) {
	req := &models.GetConfigRequest{
		PackageID: packageID,
		RoomID:    nil, // nil означает сетку пакета без учета комнаты
	}

	if roomIDStr != "" {
		roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.RoomID = &roomID
	}

	return req, nil
}
