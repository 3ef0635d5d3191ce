package upsert_slot_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/config"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/config/models"
)

const (
	msgInvalidPackageID   = "некорректный ID пакета"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPackageNotFound    = "пакет не найден"
	msgRoomNotInPackage   = "пакет не проводится в этой комнате"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные сетки слотов"
)

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

// Handle PUT /api/v1/packages/{packageId}/slot-config
// Создает или заменяет сетку пакета (roomId в теле - сетка конкретной комнаты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathInt64(r, "packageId")
	if err != nil {
		h.logger.Warn("PUT /packages/{id}/slot-config - Invalid package ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /packages/{id}/slot-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /packages/{id}/slot-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.PackageID = packageID

	// Сервис сам проверит, что пользователь - сотрудник
	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, config.ErrAccessDenied):
			h.logger.Warn("PUT /packages/{id}/slot-config - Access denied: package_id=%d, user_id=%d",
				packageID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, config.ErrInvalidInput):
			h.logger.Warn("PUT /packages/{id}/slot-config - Invalid data: package_id=%d, error=%v",
				packageID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, config.ErrPackageNotFound):
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, config.ErrRoomNotInPackage):
			handlers.RespondBadRequest(w, msgRoomNotInPackage)

		default:
			h.logger.Error("PUT /packages/{id}/slot-config - Failed to upsert config: package_id=%d, error=%v",
				packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /packages/{id}/slot-config - Config saved successfully: package_id=%d, config_id=%d",
		packageID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
