package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// EntityScope which kind of entity a pricing rule targets
type EntityScope string

const (
	EntityScopePackage    EntityScope = "package"
	EntityScopeAttraction EntityScope = "attraction"
	EntityScopeAll        EntityScope = "all"
)

// EntityType kind of the priced entity
type EntityType string

const (
	EntityTypePackage    EntityType = "package"
	EntityTypeAttraction EntityType = "attraction"
)

// IsValid returns true for a priceable entity type
func (t EntityType) IsValid() bool {
	return t == EntityTypePackage || t == EntityTypeAttraction
}

// AmountKind how a rule amount is interpreted
type AmountKind string

const (
	AmountKindFixed      AmountKind = "fixed"
	AmountKindPercentage AmountKind = "percentage"
)

// ApplicationKind how a fee relates to the displayed price (fees only)
type ApplicationKind string

const (
	ApplicationKindAdditive  ApplicationKind = "additive"
	ApplicationKindInclusive ApplicationKind = "inclusive"
)

// RecurrenceKind how a special-pricing discount repeats (discounts only)
type RecurrenceKind string

const (
	RecurrenceOneTime RecurrenceKind = "one_time"
	RecurrenceWeekly  RecurrenceKind = "weekly"
	RecurrenceMonthly RecurrenceKind = "monthly"
)

// DateRange inclusive range of calendar days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains returns true if date falls within [Start, End], compared by calendar day
func (r DateRange) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(r.Start)) && !d.After(DateOnly(r.End))
}

// TimeWindow half-open time-of-day window [Start, End)
type TimeWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// Contains returns true if t falls within [Start, End)
func (w TimeWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// PricingRule discount or fee definition.
// A rule with RecurrenceKind set is a discount (special pricing),
// a rule with ApplicationKind set is a fee. Never both.
type PricingRule struct {
	ID              int64
	Label           string
	EntityScope     EntityScope
	EntityIDs       []int64 // empty = every entity of the scope
	Amount          float64
	AmountKind      AmountKind
	ApplicationKind ApplicationKind
	RecurrenceKind  RecurrenceKind
	RecurrenceValue *int // weekday 0-6 (0 = Sunday) for weekly, day of month 1-31 for monthly
	SpecificDate    *time.Time
	DateRange       *DateRange
	TimeWindow      *TimeWindow
	Priority        int
	Stackable       bool
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsDiscount returns true for special-pricing rules
func (r *PricingRule) IsDiscount() bool {
	return r.RecurrenceKind != ""
}

// IsFee returns true for fee rules
func (r *PricingRule) IsFee() bool {
	return r.ApplicationKind != ""
}

// Validate checks creation-time invariants of a rule
func (r *PricingRule) Validate() error {
	if r.Label == "" || len(r.Label) > MaxRuleLabelLength {
		return fmt.Errorf("%w: label must be 1-%d characters", ErrInvalidRule, MaxRuleLabelLength)
	}

	switch r.EntityScope {
	case EntityScopePackage, EntityScopeAttraction:
	case EntityScopeAll:
		if len(r.EntityIDs) > 0 {
			return fmt.Errorf("%w: scope all cannot list entity ids", ErrInvalidRule)
		}
	default:
		return fmt.Errorf("%w: unknown entity scope %q", ErrInvalidRule, r.EntityScope)
	}

	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", ErrInvalidRule)
	}

	switch r.AmountKind {
	case AmountKindFixed:
		if r.Amount < 0 {
			return fmt.Errorf("%w: fixed amount must not be negative", ErrInvalidRule)
		}
	case AmountKindPercentage:
		if r.Amount < MinPercentage || r.Amount > MaxPercentage {
			return fmt.Errorf("%w: percentage must be within [0,100], got %v", ErrInvalidRule, r.Amount)
		}
	default:
		return fmt.Errorf("%w: unknown amount kind %q", ErrInvalidRule, r.AmountKind)
	}

	if r.IsDiscount() == r.IsFee() {
		return fmt.Errorf("%w: rule must be either a discount (recurrence) or a fee (application kind)", ErrInvalidRule)
	}

	if r.IsFee() {
		if r.ApplicationKind != ApplicationKindAdditive && r.ApplicationKind != ApplicationKindInclusive {
			return fmt.Errorf("%w: unknown application kind %q", ErrInvalidRule, r.ApplicationKind)
		}
	} else if err := r.validateRecurrence(); err != nil {
		return err
	}

	if r.DateRange != nil && r.DateRange.End.Before(r.DateRange.Start) {
		return fmt.Errorf("%w: date range end is before start", ErrInvalidRule)
	}

	if r.TimeWindow != nil {
		if r.TimeWindow.Start.Validate() != nil || r.TimeWindow.End.Validate() != nil {
			return fmt.Errorf("%w: invalid time window", ErrInvalidRule)
		}
		if !r.TimeWindow.Start.IsBefore(r.TimeWindow.End) {
			return fmt.Errorf("%w: time window start must be before end", ErrInvalidRule)
		}
	}

	return nil
}

func (r *PricingRule) validateRecurrence() error {
	switch r.RecurrenceKind {
	case RecurrenceOneTime:
		if r.SpecificDate == nil {
			return fmt.Errorf("%w: one_time rule requires specific date", ErrInvalidRule)
		}
	case RecurrenceWeekly:
		if r.RecurrenceValue == nil || *r.RecurrenceValue < MinWeekday || *r.RecurrenceValue > MaxWeekday {
			return fmt.Errorf("%w: weekly rule requires weekday 0-6", ErrInvalidRule)
		}
	case RecurrenceMonthly:
		if r.RecurrenceValue == nil || *r.RecurrenceValue < MinDayOfMonth || *r.RecurrenceValue > MaxDayOfMonth {
			return fmt.Errorf("%w: monthly rule requires day of month 1-31", ErrInvalidRule)
		}
	default:
		return fmt.Errorf("%w: unknown recurrence kind %q", ErrInvalidRule, r.RecurrenceKind)
	}
	return nil
}

// ClampPercentage limits a percentage to [0,100] and reports whether it had to.
// NaN counts as 0.
func ClampPercentage(p float64) (float64, bool) {
	switch {
	case math.IsNaN(p):
		return MinPercentage, true
	case p < MinPercentage:
		return MinPercentage, true
	case p > MaxPercentage:
		return MaxPercentage, true
	default:
		return p, false
	}
}

// PricingTarget the entity being priced
type PricingTarget struct {
	Type EntityType
	ID   int64
}

// StepKind kind of an applied breakdown step
type StepKind string

const (
	StepKindDiscount     StepKind = "discount"
	StepKindAdditiveFee  StepKind = "additive_fee"
	StepKindInclusiveFee StepKind = "inclusive_fee"
)

// AppliedStep one rule applied to the running amount.
// Delta is negative for discounts and positive for fees; an inclusive fee
// records its embedded component without changing the total.
type AppliedStep struct {
	RuleID int64
	Label  string
	Kind   StepKind
	Delta  float64
}

// PriceBreakdown result of pricing an entity
type PriceBreakdown struct {
	BaseAmount  float64
	Steps       []AppliedStep
	FinalAmount float64
}

// InclusiveFeesTotal sum of fee components already embedded in the final amount
func (b *PriceBreakdown) InclusiveFeesTotal() float64 {
	total := 0.0
	for _, s := range b.Steps {
		if s.Kind == StepKindInclusiveFee {
			total += s.Delta
		}
	}
	return total
}
