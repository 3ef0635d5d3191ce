package booking

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

func TestBreakdownStorageFormat(t *testing.T) {
	breakdown := domain.PriceBreakdown{
		BaseAmount: 100,
		Steps: []domain.AppliedStep{
			{RuleID: 1, Label: "Sunday", Kind: domain.StepKindDiscount, Delta: -20},
			{RuleID: 2, Label: "VAT", Kind: domain.StepKindInclusiveFee, Delta: 4},
		},
		FinalAmount: 80,
	}

	raw, err := encodeBreakdown(breakdown)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"base_amount": 100,
		"steps": [
			{"rule_id": 1, "label": "Sunday", "kind": "discount", "delta": -20},
			{"rule_id": 2, "label": "VAT", "kind": "inclusive_fee", "delta": 4}
		],
		"final_amount": 80
	}`, string(raw))

	decoded, err := decodeBreakdown(raw)
	require.NoError(t, err)
	if diff := cmp.Diff(breakdown, decoded); diff != "" {
		t.Errorf("decodeBreakdown() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBreakdown_EmptyColumn(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte(`{}`)} {
		got, err := decodeBreakdown(raw)
		require.NoError(t, err)
		assert.Equal(t, domain.PriceBreakdown{Steps: []domain.AppliedStep{}}, got)
	}

	_, err := decodeBreakdown([]byte(`not json`))
	assert.Error(t, err)
}
