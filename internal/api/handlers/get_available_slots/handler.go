package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRoomID        = "некорректный ID комнаты"
	msgMissingPackageID     = "ID пакета обязателен"
	msgInvalidPackageID     = "некорректный ID пакета"
	msgMissingDate          = "дата обязательна"
	msgInvalidParams        = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgPackageNotFound      = "пакет не найден"
	msgRoomNotInPackage     = "пакет не проводится в этой комнате"
	msgInvalidDate          = "дата в прошлом"
	msgInvalidConfiguration = "некорректная сетка слотов"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/available-slots
// Query params: packageId (required), date (required, YYYY-MM-DD), startTime (optional, HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем roomId из URL
	roomID, err := handlers.PathInt64(r, "roomId")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/available-slots - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	query := r.URL.Query()

	// Извлекаем packageId из query параметров
	packageIDStr := query.Get("packageId")
	if packageIDStr == "" {
		h.logger.Warn("GET /rooms/{id}/available-slots - Missing package ID")
		handlers.RespondBadRequest(w, msgMissingPackageID)
		return
	}

	packageID, err := strconv.ParseInt(packageIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/available-slots - Invalid package ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(roomID, packageID, dateStr, query.Get("startTime"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrPackageNotFound):
			h.logger.Warn("GET /rooms/{id}/available-slots - Package not found: package_id=%d", packageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, getAvailableSlots.ErrRoomNotInPackage):
			h.logger.Warn("GET /rooms/{id}/available-slots - Room not in package: room_id=%d, package_id=%d", roomID, packageID)
			handlers.RespondBadRequest(w, msgRoomNotInPackage)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /rooms/{id}/available-slots - Date in the past: %s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrInvalidConfiguration):
			h.logger.Error("GET /rooms/{id}/available-slots - Invalid grid config: package_id=%d, room_id=%d, error=%v",
				packageID, roomID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidConfiguration)

		default:
			h.logger.Error("GET /rooms/{id}/available-slots - Failed to get slots: room_id=%d, package_id=%d, error=%v",
				roomID, packageID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/available-slots - Slots retrieved successfully: room_id=%d, package_id=%d, slots_count=%d",
		roomID, packageID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
