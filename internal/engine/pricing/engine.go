// Package pricing evaluates special-pricing discounts and fees for an entity
// on a date. The engine never reads a clock and never fails: out-of-range
// amounts are clamped.
package pricing

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// RulePredicate reports whether a rule should take part in pricing
type RulePredicate func(rule *domain.PricingRule) bool

// ActiveOn matches rules active on the date and, for time-windowed rules, at the time
func ActiveOn(date time.Time, at *types.TimeString) RulePredicate {
	return func(rule *domain.PricingRule) bool {
		return IsRuleActiveOn(rule, date, at)
	}
}

// ForEntity matches rules whose scope covers the target
func ForEntity(target domain.PricingTarget) RulePredicate {
	return func(rule *domain.PricingRule) bool {
		return MatchesEntity(rule, target)
	}
}

// Select returns the rules satisfying every predicate, keeping input order
func Select(rules []domain.PricingRule, preds ...RulePredicate) []domain.PricingRule {
	selected := make([]domain.PricingRule, 0, len(rules))
	for i := range rules {
		ok := true
		for _, pred := range preds {
			if !pred(&rules[i]) {
				ok = false
				break
			}
		}
		if ok {
			selected = append(selected, rules[i])
		}
	}
	return selected
}

// IsRuleActiveOn checks the active flag, date range, recurrence and time window.
// A time-windowed rule never matches when at is nil.
func IsRuleActiveOn(rule *domain.PricingRule, date time.Time, at *types.TimeString) bool {
	if !rule.Active {
		return false
	}

	if rule.DateRange != nil && !rule.DateRange.Contains(date) {
		return false
	}

	if rule.IsDiscount() && !matchesRecurrence(rule, date) {
		return false
	}

	if rule.TimeWindow != nil {
		if at == nil {
			return false
		}
		if !rule.TimeWindow.Contains(*at) {
			return false
		}
	}

	return true
}

// weekly recurrence uses time.Weekday numbering: 0 = Sunday
func matchesRecurrence(rule *domain.PricingRule, date time.Time) bool {
	switch rule.RecurrenceKind {
	case domain.RecurrenceOneTime:
		return rule.SpecificDate != nil && domain.SameDay(date, *rule.SpecificDate)
	case domain.RecurrenceWeekly:
		return rule.RecurrenceValue != nil && int(date.Weekday()) == *rule.RecurrenceValue
	case domain.RecurrenceMonthly:
		return rule.RecurrenceValue != nil && date.Day() == *rule.RecurrenceValue
	default:
		return false
	}
}

// MatchesEntity returns true if the rule scope covers the target
func MatchesEntity(rule *domain.PricingRule, target domain.PricingTarget) bool {
	if rule.EntityScope == domain.EntityScopeAll {
		return true
	}
	if string(rule.EntityScope) != string(target.Type) {
		return false
	}
	return len(rule.EntityIDs) == 0 || slices.Contains(rule.EntityIDs, target.ID)
}

// ComputeBreakdown prices the target on the date.
// Discounts go first (priority desc, id asc, stacking honored), then fees
// (priority asc, id asc). Percentages compound on the running amount.
// Only the final amount is rounded to cents.
func ComputeBreakdown(base float64, target domain.PricingTarget, date time.Time, at *types.TimeString, rules []domain.PricingRule) domain.PriceBreakdown {
	applicable := Select(rules, ActiveOn(date, at), ForEntity(target))

	var discounts, fees []domain.PricingRule
	for _, rule := range applicable {
		switch {
		case rule.IsDiscount() && !rule.IsFee():
			discounts = append(discounts, rule)
		case rule.IsFee() && !rule.IsDiscount():
			fees = append(fees, rule)
		}
	}

	running := base
	steps := make([]domain.AppliedStep, 0, len(applicable))

	for _, rule := range selectDiscounts(discounts) {
		next := math.Max(0, running-ruleAmount(&rule, running))
		steps = append(steps, domain.AppliedStep{
			RuleID: rule.ID,
			Label:  rule.Label,
			Kind:   domain.StepKindDiscount,
			Delta:  next - running,
		})
		running = next
	}

	slices.SortFunc(fees, func(a, b domain.PricingRule) int {
		return cmp.Or(cmp.Compare(a.Priority, b.Priority), cmp.Compare(a.ID, b.ID))
	})

	for _, rule := range fees {
		amount := ruleAmount(&rule, running)
		step := domain.AppliedStep{
			RuleID: rule.ID,
			Label:  rule.Label,
			Delta:  amount,
		}

		switch rule.ApplicationKind {
		case domain.ApplicationKindInclusive:
			// already part of the running amount, recorded for display only
			step.Kind = domain.StepKindInclusiveFee
		default:
			step.Kind = domain.StepKindAdditiveFee
			running += amount
		}
		steps = append(steps, step)
	}

	return domain.PriceBreakdown{
		BaseAmount:  base,
		Steps:       steps,
		FinalAmount: roundCents(running),
	}
}

// selectDiscounts orders discounts by priority desc, id asc and applies stacking:
// a non-stackable top rule applies alone; otherwise stackable rules apply
// until the first non-stackable one.
func selectDiscounts(discounts []domain.PricingRule) []domain.PricingRule {
	if len(discounts) == 0 {
		return nil
	}

	sorted := slices.Clone(discounts)
	slices.SortFunc(sorted, func(a, b domain.PricingRule) int {
		return cmp.Or(cmp.Compare(b.Priority, a.Priority), cmp.Compare(a.ID, b.ID))
	})

	if !sorted[0].Stackable {
		return sorted[:1]
	}

	for i, rule := range sorted {
		if !rule.Stackable {
			return sorted[:i]
		}
	}
	return sorted
}

// ruleAmount absolute amount of the rule against the running total
func ruleAmount(rule *domain.PricingRule, running float64) float64 {
	switch rule.AmountKind {
	case domain.AmountKindPercentage:
		p, _ := domain.ClampPercentage(rule.Amount)
		return running * p / 100
	default:
		if math.IsNaN(rule.Amount) || math.IsInf(rule.Amount, 0) {
			return 0
		}
		return math.Max(0, rule.Amount)
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// QuoteRequest input of QuotePrice.
// Rules are the active rules visible to the entity; the engine filters them again.
type QuoteRequest struct {
	EntityType domain.EntityType
	EntityID   int64
	BaseAmount float64
	Date       time.Time
	Time       *types.TimeString
	Rules      []domain.PricingRule
}

// QuotePrice prices an entity for a date and optional time of day
func QuotePrice(req QuoteRequest) domain.PriceBreakdown {
	target := domain.PricingTarget{Type: req.EntityType, ID: req.EntityID}
	return ComputeBreakdown(req.BaseAmount, target, req.Date, req.Time, req.Rules)
}
