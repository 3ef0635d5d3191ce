package get_slot_config

import (
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
)

const (
	msgInvalidPackageID = "некорректный ID пакета"
	msgInvalidParams    = "некорректные параметры запроса"
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

// Handle GET /api/v1/packages/{packageId}/slot-config
// Query params: roomId (опционально)
// Публичный endpoint - без авторизации. Без сохраненной сетки возвращается сетка по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathInt64(r, "packageId")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/slot-config - Invalid package ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	serviceReq, err := ToServiceRequest(packageID, r.URL.Query().Get("roomId"))
	if err != nil {
		h.logger.Warn("GET /packages/{id}/slot-config - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetWithHierarchy(r.Context(), serviceReq)
	if err != nil {
		h.logger.Error("GET /packages/{id}/slot-config - Failed to get config: package_id=%d, error=%v",
			packageID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /packages/{id}/slot-config - Config retrieved successfully: package_id=%d, config_id=%d, default=%t",
		packageID, result.ID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
