package pricingrule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

const tableName = "pricing_rules"

var ruleColumns = []string{
	"id",
	"label",
	"entity_scope",
	"entity_ids",
	"amount",
	"amount_kind",
	"application_kind",
	"recurrence_kind",
	"recurrence_value",
	"specific_date",
	"date_range_start",
	"date_range_end",
	"time_window_start",
	"time_window_end",
	"priority",
	"stackable",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил ценообразования (скидки и сборы)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет правило
// Инварианты правила проверяются до вызова (domain.PricingRule.Validate)
func (r *Repository) Create(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildInsertQuery(rule).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

func buildInsertQuery(rule *domain.PricingRule) squirrel.InsertBuilder {
	var dateRangeStart, dateRangeEnd *time.Time
	if rule.DateRange != nil {
		start, end := domain.DateOnly(rule.DateRange.Start), domain.DateOnly(rule.DateRange.End)
		dateRangeStart, dateRangeEnd = &start, &end
	}

	var windowStart, windowEnd types.TimeString
	if rule.TimeWindow != nil {
		windowStart, windowEnd = rule.TimeWindow.Start, rule.TimeWindow.End
	}

	var specificDate *time.Time
	if rule.SpecificDate != nil {
		d := domain.DateOnly(*rule.SpecificDate)
		specificDate = &d
	}

	entityIDs := rule.EntityIDs
	if entityIDs == nil {
		entityIDs = []int64{}
	}

	return psqlbuilder.Insert(tableName).
		Columns(
			"label",
			"entity_scope",
			"entity_ids",
			"amount",
			"amount_kind",
			"application_kind",
			"recurrence_kind",
			"recurrence_value",
			"specific_date",
			"date_range_start",
			"date_range_end",
			"time_window_start",
			"time_window_end",
			"priority",
			"stackable",
			"active",
		).
		Values(
			rule.Label,
			rule.EntityScope,
			pq.Array(entityIDs),
			rule.Amount,
			rule.AmountKind,
			nullIfEmpty(string(rule.ApplicationKind)),
			nullIfEmpty(string(rule.RecurrenceKind)),
			rule.RecurrenceValue,
			specificDate,
			dateRangeStart,
			dateRangeEnd,
			windowStart,
			windowEnd,
			rule.Priority,
			rule.Stackable,
			rule.Active,
		).
		Suffix("RETURNING id, created_at, updated_at")
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetActiveForEntity получает включенные правила, видимые сущности на дату
// Повторение и временное окно проверяет движок цен.
func (r *Repository) GetActiveForEntity(ctx context.Context, target domain.PricingTarget, date time.Time) ([]domain.PricingRule, error) {
	return r.list(ctx, "GetActiveForEntity", activeForEntityQuery(target, date))
}

func activeForEntityQuery(target domain.PricingTarget, date time.Time) squirrel.SelectBuilder {
	return psqlbuilder.Select(ruleColumns...).
		From(tableName).
		Where(squirrel.And{
			activeOnly(),
			coversEntity(target),
			withinDateRange(date),
		}).
		OrderBy("id ASC")
}

// ListFilter фильтр административного списка правил
type ListFilter struct {
	EntityType *domain.EntityType // nil = все правила
	EntityID   *int64
	OnlyActive bool
}

// List получает правила по фильтру
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]domain.PricingRule, error) {
	return r.list(ctx, "List", listQuery(filter))
}

func listQuery(filter ListFilter) squirrel.SelectBuilder {
	preds := squirrel.And{}
	if filter.OnlyActive {
		preds = append(preds, activeOnly())
	}
	if filter.EntityType != nil {
		preds = append(preds, ofEntity(*filter.EntityType, filter.EntityID))
	}

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From(tableName).
		OrderBy("priority DESC, id ASC")

	if len(preds) > 0 {
		selectBuilder = selectBuilder.Where(preds)
	}

	return selectBuilder
}

// SetActive включает или выключает правило
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	rules := make([]domain.PricingRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		rules = append(rules, *rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return rules, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (*domain.PricingRule, error) {
	var rule domain.PricingRule
	var entityIDs pq.Int64Array
	var applicationKind, recurrenceKind sql.NullString
	var recurrenceValue sql.NullInt32
	var specificDate, rangeStart, rangeEnd sql.NullTime
	var windowStart, windowEnd types.TimeString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.Label,
		&rule.EntityScope,
		&entityIDs,
		&rule.Amount,
		&rule.AmountKind,
		&applicationKind,
		&recurrenceKind,
		&recurrenceValue,
		&specificDate,
		&rangeStart,
		&rangeEnd,
		&windowStart,
		&windowEnd,
		&rule.Priority,
		&rule.Stackable,
		&rule.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.EntityIDs = []int64(entityIDs)
	rule.ApplicationKind = domain.ApplicationKind(applicationKind.String)
	rule.RecurrenceKind = domain.RecurrenceKind(recurrenceKind.String)

	if recurrenceValue.Valid {
		v := int(recurrenceValue.Int32)
		rule.RecurrenceValue = &v
	}
	if specificDate.Valid {
		rule.SpecificDate = &specificDate.Time
	}
	if rangeStart.Valid && rangeEnd.Valid {
		rule.DateRange = &domain.DateRange{Start: rangeStart.Time, End: rangeEnd.Time}
	}
	if !windowStart.IsZero() && !windowEnd.IsZero() {
		rule.TimeWindow = &domain.TimeWindow{Start: windowStart, End: windowEnd}
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
