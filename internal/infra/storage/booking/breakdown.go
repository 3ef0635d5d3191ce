package booking

import (
	"encoding/json"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// breakdownRecord формат хранения расчета цены в колонке price_breakdown (JSONB)
type breakdownRecord struct {
	BaseAmount  float64      `json:"base_amount"`
	Steps       []stepRecord `json:"steps"`
	FinalAmount float64      `json:"final_amount"`
}

type stepRecord struct {
	RuleID int64   `json:"rule_id"`
	Label  string  `json:"label"`
	Kind   string  `json:"kind"`
	Delta  float64 `json:"delta"`
}

func encodeBreakdown(b domain.PriceBreakdown) ([]byte, error) {
	record := breakdownRecord{
		BaseAmount:  b.BaseAmount,
		Steps:       make([]stepRecord, 0, len(b.Steps)),
		FinalAmount: b.FinalAmount,
	}
	for _, s := range b.Steps {
		record.Steps = append(record.Steps, stepRecord{
			RuleID: s.RuleID,
			Label:  s.Label,
			Kind:   string(s.Kind),
			Delta:  s.Delta,
		})
	}
	return json.Marshal(record)
}

func decodeBreakdown(raw []byte) (domain.PriceBreakdown, error) {
	var record breakdownRecord
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &record); err != nil {
			return domain.PriceBreakdown{}, err
		}
	}

	breakdown := domain.PriceBreakdown{
		BaseAmount:  record.BaseAmount,
		Steps:       make([]domain.AppliedStep, 0, len(record.Steps)),
		FinalAmount: record.FinalAmount,
	}
	for _, s := range record.Steps {
		breakdown.Steps = append(breakdown.Steps, domain.AppliedStep{
			RuleID: s.RuleID,
			Label:  s.Label,
			Kind:   domain.StepKind(s.Kind),
			Delta:  s.Delta,
		})
	}
	return breakdown, nil
}
