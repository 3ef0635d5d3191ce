package list_pricing_rules

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricingrules"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricingrules/models"
)

const msgInvalidParams = "некорректные параметры запроса"

type RuleService interface {
	ListForEntity(ctx context.Context, req *models.ListRulesRequest) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service RuleService
	logger  Logger
}

func NewHandler(service RuleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/pricing-rules
// Query params: entityType, entityId, active (все опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := toServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /pricing-rules - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListForEntity(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, pricingrules.ErrInvalidInput) {
			h.logger.Warn("GET /pricing-rules - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /pricing-rules - Failed to list rules: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /pricing-rules - Rules retrieved: count=%d", len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}

func toServiceRequest(r *http.Request) (*models.ListRulesRequest, error) {
	query := r.URL.Query()
	req := &models.ListRulesRequest{}

	if entityType := query.Get("entityType"); entityType != "" {
		req.EntityType = &entityType
	}

	if entityIDStr := query.Get("entityId"); entityIDStr != "" {
		entityID, err := strconv.ParseInt(entityIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.EntityID = &entityID
	}

	if activeStr := query.Get("active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			return nil, err
		}
		req.OnlyActive = active
	}

	return req, nil
}
