package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Request модели

// CreateRuleRequest запрос на создание скидки или сбора
// Скидка задается через recurrenceKind, сбор - через applicationKind
type CreateRuleRequest struct {
	UserID          int64   `json:"-"`
	Label           string  `json:"label"`
	EntityScope     string  `json:"entityScope"`         // package | attraction | all
	EntityIDs       []int64 `json:"entityIds,omitempty"` // пусто = все сущности
	Amount          float64 `json:"amount"`
	AmountKind      string  `json:"amountKind"`                // fixed | percentage
	ApplicationKind string  `json:"applicationKind,omitempty"` // additive | inclusive
	RecurrenceKind  string  `json:"recurrenceKind,omitempty"`  // one_time | weekly | monthly
	RecurrenceValue *int    `json:"recurrenceValue,omitempty"`
	SpecificDate    *string `json:"specificDate,omitempty"`   // "2025-12-31"
	DateRangeStart  *string `json:"dateRangeStart,omitempty"` // "2025-12-01"
	DateRangeEnd    *string `json:"dateRangeEnd,omitempty"`
	TimeWindowStart *string `json:"timeWindowStart,omitempty"` // "18:00"
	TimeWindowEnd   *string `json:"timeWindowEnd,omitempty"`
	Priority        int     `json:"priority"`
	Stackable       bool    `json:"stackable"`
	Active          *bool   `json:"active,omitempty"` // по умолчанию true
}

// ListRulesRequest фильтр списка правил
type ListRulesRequest struct {
	EntityType *string
	EntityID   *int64
	OnlyActive bool
}

// SetActiveRequest запрос на включение или выключение правила
type SetActiveRequest struct {
	UserID int64 `json:"-"`
	Active bool  `json:"active"`
}

// Response модели

// RuleResponse ответ с данными правила
type RuleResponse struct {
	ID              int64     `json:"id"`
	Label           string    `json:"label"`
	Kind            string    `json:"kind"` // discount | fee
	EntityScope     string    `json:"entityScope"`
	EntityIDs       []int64   `json:"entityIds"`
	Amount          float64   `json:"amount"`
	AmountKind      string    `json:"amountKind"`
	ApplicationKind string    `json:"applicationKind,omitempty"`
	RecurrenceKind  string    `json:"recurrenceKind,omitempty"`
	RecurrenceValue *int      `json:"recurrenceValue,omitempty"`
	SpecificDate    *string   `json:"specificDate,omitempty"`
	DateRangeStart  *string   `json:"dateRangeStart,omitempty"`
	DateRangeEnd    *string   `json:"dateRangeEnd,omitempty"`
	TimeWindowStart *string   `json:"timeWindowStart,omitempty"`
	TimeWindowEnd   *string   `json:"timeWindowEnd,omitempty"`
	Priority        int       `json:"priority"`
	Stackable       bool      `json:"stackable"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

// ToDomainRule конвертирует запрос в domain модель
// Инварианты правила проверяет domain.PricingRule.Validate
func (r *CreateRuleRequest) ToDomainRule() (*domain.PricingRule, error) {
	rule := &domain.PricingRule{
		Label:           r.Label,
		EntityScope:     domain.EntityScope(r.EntityScope),
		EntityIDs:       r.EntityIDs,
		Amount:          r.Amount,
		AmountKind:      domain.AmountKind(r.AmountKind),
		ApplicationKind: domain.ApplicationKind(r.ApplicationKind),
		RecurrenceKind:  domain.RecurrenceKind(r.RecurrenceKind),
		RecurrenceValue: r.RecurrenceValue,
		Priority:        r.Priority,
		Stackable:       r.Stackable,
		Active:          r.Active == nil || *r.Active,
	}

	if r.SpecificDate != nil {
		date, err := parseDate("specificDate", *r.SpecificDate)
		if err != nil {
			return nil, err
		}
		rule.SpecificDate = &date
	}

	if r.DateRangeStart != nil || r.DateRangeEnd != nil {
		if r.DateRangeStart == nil || r.DateRangeEnd == nil {
			return nil, errors.New("dateRangeStart and dateRangeEnd must be set together")
		}
		start, err := parseDate("dateRangeStart", *r.DateRangeStart)
		if err != nil {
			return nil, err
		}
		end, err := parseDate("dateRangeEnd", *r.DateRangeEnd)
		if err != nil {
			return nil, err
		}
		rule.DateRange = &domain.DateRange{Start: start, End: end}
	}

	if r.TimeWindowStart != nil || r.TimeWindowEnd != nil {
		if r.TimeWindowStart == nil || r.TimeWindowEnd == nil {
			return nil, errors.New("timeWindowStart and timeWindowEnd must be set together")
		}
		rule.TimeWindow = &domain.TimeWindow{
			Start: types.TimeString(*r.TimeWindowStart),
			End:   types.TimeString(*r.TimeWindowEnd),
		}
	}

	return rule, nil
}

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.PricingRule) *RuleResponse {
	if r == nil {
		return nil
	}

	kind := "discount"
	if r.IsFee() {
		kind = "fee"
	}

	entityIDs := r.EntityIDs
	if entityIDs == nil {
		entityIDs = []int64{}
	}

	resp := &RuleResponse{
		ID:              r.ID,
		Label:           r.Label,
		Kind:            kind,
		EntityScope:     string(r.EntityScope),
		EntityIDs:       entityIDs,
		Amount:          r.Amount,
		AmountKind:      string(r.AmountKind),
		ApplicationKind: string(r.ApplicationKind),
		RecurrenceKind:  string(r.RecurrenceKind),
		RecurrenceValue: r.RecurrenceValue,
		Priority:        r.Priority,
		Stackable:       r.Stackable,
		Active:          r.Active,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.SpecificDate != nil {
		resp.SpecificDate = formatDate(*r.SpecificDate)
	}
	if r.DateRange != nil {
		resp.DateRangeStart = formatDate(r.DateRange.Start)
		resp.DateRangeEnd = formatDate(r.DateRange.End)
	}
	if r.TimeWindow != nil {
		start, end := r.TimeWindow.Start.String(), r.TimeWindow.End.String()
		resp.TimeWindowStart, resp.TimeWindowEnd = &start, &end
	}

	return resp
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []domain.PricingRule) *RuleListResponse {
	resp := &RuleListResponse{
		Rules: make([]RuleResponse, 0, len(rules)),
	}

	for i := range rules {
		resp.Rules = append(resp.Rules, *FromDomainRule(&rules[i]))
	}

	return resp
}

func parseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", field)
	}
	return date, nil
}

func formatDate(t time.Time) *string {
	s := t.Format(domain.DateFormat)
	return &s
}
