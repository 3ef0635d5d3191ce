package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	quotePrice "github.com/m04kA/SMC-VenueBookingService/internal/usecase/quote_price"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgInvalidInput       = "некорректные параметры расчета"
	msgEntityNotFound     = "пакет или аттракцион не найден"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/pricing/quote
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuotePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /pricing/quote - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("POST /pricing/quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, quotePrice.ErrEntityNotFound):
			h.logger.Warn("POST /pricing/quote - Entity not found: %s/%d", req.EntityType, req.EntityID)
			handlers.RespondNotFound(w, msgEntityNotFound)

		default:
			h.logger.Error("POST /pricing/quote - Failed to quote price: %s/%d, error=%v", req.EntityType, req.EntityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pricing/quote - Price quoted: %s/%d final=%.2f",
		req.EntityType, req.EntityID, result.Breakdown.FinalAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
