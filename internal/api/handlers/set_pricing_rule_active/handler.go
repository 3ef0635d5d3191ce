package set_pricing_rule_active

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricingrules"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/pricingrules/models"
)

const (
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "правило не найдено"
	msgForbidden          = "доступ запрещен"
)

type RuleService interface {
	SetActive(ctx context.Context, id int64, req *models.SetActiveRequest) (*models.RuleResponse, error)
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

// Handle PATCH /api/v1/pricing-rules/{ruleId}/active
// Body: {"active": false}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID, err := handlers.PathInt64(r, "ruleId")
	if err != nil {
		h.logger.Warn("PATCH /pricing-rules/{id}/active - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /pricing-rules/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.SetActive(r.Context(), ruleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, pricingrules.ErrRuleNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, pricingrules.ErrAccessDenied):
			h.logger.Warn("PATCH /pricing-rules/{id}/active - Access denied: rule_id=%d, user_id=%d", ruleID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /pricing-rules/{id}/active - Failed to toggle rule: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /pricing-rules/{id}/active - Rule toggled: rule_id=%d, active=%t, user_id=%d",
		ruleID, result.Active, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
