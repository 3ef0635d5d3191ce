package list_slot_configs

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/config/models"
)

const msgInvalidPackageID = "некорректный ID пакета"

type ConfigService interface {
	GetAllByPackage(ctx context.Context, packageID int64) (*models.ConfigListResponse, error)
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

// Handle GET /api/v1/packages/{packageId}/slot-configs
// Только сохраненные сетки, без сетки по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathInt64(r, "packageId")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/slot-configs - Invalid package ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	result, err := h.service.GetAllByPackage(r.Context(), packageID)
	if err != nil {
		h.logger.Error("GET /packages/{id}/slot-configs - Failed to list configs: package_id=%d, error=%v", packageID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /packages/{id}/slot-configs - Configs retrieved: package_id=%d, count=%d", packageID, len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
