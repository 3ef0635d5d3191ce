package pricingrule

import (
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Предикаты выборки правил. Собираются вызывающим кодом в squirrel.And
// и заменяют цепочки скоупов: движок цен сам в хранилище не ходит.

// activeOnly только включенные правила
func activeOnly() squirrel.Sqlizer {
	return squirrel.Eq{"active": true}
}

// coversEntity правила, чей scope покрывает сущность:
// scope = all, либо scope совпадает с типом и список id пуст или содержит id
func coversEntity(target domain.PricingTarget) squirrel.Sqlizer {
	return squirrel.Or{
		squirrel.Eq{"entity_scope": string(domain.EntityScopeAll)},
		squirrel.And{
			squirrel.Eq{"entity_scope": string(target.Type)},
			squirrel.Or{
				squirrel.Expr("cardinality(entity_ids) = 0"),
				squirrel.Expr("? = ANY(entity_ids)", target.ID),
			},
		},
	}
}

// ofEntity правила, явно привязанные к сущности (без scope = all)
func ofEntity(entityType domain.EntityType, entityID *int64) squirrel.Sqlizer {
	pred := squirrel.And{squirrel.Eq{"entity_scope": string(entityType)}}
	if entityID != nil {
		pred = append(pred, squirrel.Expr("? = ANY(entity_ids)", *entityID))
	}
	return pred
}

// withinDateRange правила без диапазона дат или с диапазоном, содержащим дату
func withinDateRange(date time.Time) squirrel.Sqlizer {
	day := domain.DateOnly(date)
	return squirrel.And{
		squirrel.Or{squirrel.Eq{"date_range_start": nil}, squirrel.LtOrEq{"date_range_start": day}},
		squirrel.Or{squirrel.Eq{"date_range_end": nil}, squirrel.GtOrEq{"date_range_end": day}},
	}
}
