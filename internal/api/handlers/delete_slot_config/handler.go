package delete_slot_config

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/config"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/config/models"
)

const (
	msgInvalidPackageID = "некорректный ID пакета"
	msgInvalidRoomID    = "некорректный ID комнаты"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgNotFound         = "сетка слотов не найдена"
)

type ConfigService interface {
	DeleteByKey(ctx context.Context, req *models.DeleteConfigRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/packages/{packageId}/slot-config
// Query params: roomId (опционально, без него удаляется сетка пакета)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathInt64(r, "packageId")
	if err != nil {
		h.logger.Warn("DELETE /packages/{id}/slot-config - Invalid package ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeleteConfigRequest{UserID: userID, PackageID: packageID}
	if roomIDStr := r.URL.Query().Get("roomId"); roomIDStr != "" {
		roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("DELETE /packages/{id}/slot-config - Invalid room ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRoomID)
			return
		}
		req.RoomID = &roomID
	}

	if err := h.service.DeleteByKey(r.Context(), req); err != nil {
		switch {
		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("DELETE /packages/{id}/slot-config - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrConfigNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /packages/{id}/slot-config - Failed to delete config: package_id=%d, error=%v", packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /packages/{id}/slot-config - Config deleted: package_id=%d, room_id=%v", packageID, req.RoomID)
	w.WriteHeader(http.StatusNoContent)
}
