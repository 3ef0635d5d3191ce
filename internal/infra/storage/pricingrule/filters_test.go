package pricingrule

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/ptr"
)

func TestCoversEntity(t *testing.T) {
	query, args, err := coversEntity(domain.PricingTarget{Type: domain.EntityTypeAttraction, ID: 12}).ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"(entity_scope = ? OR (entity_scope = ? AND (cardinality(entity_ids) = 0 OR ? = ANY(entity_ids))))",
		query)
	assert.Equal(t, []any{"all", "attraction", int64(12)}, args)
}

func TestActiveForEntityQuery(t *testing.T) {
	date := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	query, args, err := activeForEntityQuery(domain.PricingTarget{Type: domain.EntityTypePackage, ID: 3}, date).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM pricing_rules WHERE (active = $1 AND")
	assert.Contains(t, query, "$4 = ANY(entity_ids)")
	assert.Contains(t, query, "(date_range_start IS NULL OR date_range_start <= $5)")
	assert.Contains(t, query, "(date_range_end IS NULL OR date_range_end >= $6)")
	assert.Contains(t, query, "ORDER BY id ASC")

	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []any{true, "all", "package", int64(3), day, day}, args)
}

func TestListQuery(t *testing.T) {
	t.Run("no filter", func(t *testing.T) {
		query, args, err := listQuery(ListFilter{}).ToSql()
		require.NoError(t, err)
		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("entity with id", func(t *testing.T) {
		entityType := domain.EntityTypePackage
		query, args, err := listQuery(ListFilter{
			EntityType: &entityType,
			EntityID:   ptr.Ptr(int64(8)),
			OnlyActive: true,
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "WHERE (active = $1 AND (entity_scope = $2 AND $3 = ANY(entity_ids)))")
		assert.Contains(t, query, "ORDER BY priority DESC, id ASC")
		assert.Equal(t, []any{true, "package", int64(8)}, args)
	})
}

func TestBuildInsertQuery(t *testing.T) {
	rule := &domain.PricingRule{
		Label:           "Service fee",
		EntityScope:     domain.EntityScopeAll,
		Amount:          5,
		AmountKind:      domain.AmountKindFixed,
		ApplicationKind: domain.ApplicationKindAdditive,
		Active:          true,
	}

	query, args, err := buildInsertQuery(rule).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO pricing_rules")
	require.Len(t, args, 16)
	assert.Equal(t, pq.Array([]int64{}), args[2])
	assert.Equal(t, "additive", args[5])
	assert.Nil(t, args[6], "fee has no recurrence kind")
}
