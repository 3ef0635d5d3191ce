package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

const tableName = "booked_slots"

var slotColumns = []string{
	"id",
	"booking_id",
	"room_id",
	"package_id",
	"slot_date",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий занятых слотов комнат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет занятый слот
// Нарушение exclusion constraint (пересечение с другим booked-слотом) возвращается как ErrSlotAlreadyBooked
func (r *Repository) Create(ctx context.Context, slot *domain.BookedSlot) (*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"booking_id",
			"room_id",
			"package_id",
			"slot_date",
			"start_time",
			"end_time",
			"status",
		).
		Values(
			slot.BookingID,
			slot.RoomID,
			slot.PackageID,
			domain.DateOnly(slot.Date),
			slot.Interval.Start,
			slot.Interval.End,
			slot.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isSlotTaken(err) {
			return nil, fmt.Errorf("%w: Create - room %d on %s %s", ErrSlotAlreadyBooked,
				slot.RoomID, slot.Date.Format(domain.DateFormat), slot.Interval)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByBookingID получает слот, принадлежащий бронированию
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"booking_id": bookingID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByRoomAndDate получает слоты комнаты на дату
// Если статусы в фильтре не указаны, возвращает только блокирующие слоты.
// Если в контексте есть транзакция, строки блокируются (FOR UPDATE) до её завершения,
// что сериализует проверку и вставку для пары (room_id, date).
func (r *Repository) GetByRoomAndDate(ctx context.Context, filter domain.SlotsFilter) ([]domain.BookedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildRoomDateQuery(filter, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoomAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.BookedSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByRoomAndDate - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, *slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByRoomAndDate - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// buildRoomDateQuery собирает выборку слотов комнаты на дату
func buildRoomDateQuery(filter domain.SlotsFilter, forUpdate bool) squirrel.SelectBuilder {
	statuses := filter.Statuses
	if len(statuses) == 0 {
		statuses = domain.BlockingSlotStatuses
	}

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"room_id":   filter.RoomID,
			"slot_date": domain.DateOnly(filter.Date),
			"status":    statusStrings,
		}).
		OrderBy("start_time ASC")

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return selectBuilder
}

// UpdateStatus обновляет статус слота
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isSlotTaken(err) {
			return fmt.Errorf("%w: UpdateStatus - slot id=%d", ErrSlotAlreadyBooked, id)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// UpdateSchedule переносит слот на другую дату и время
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, date time.Time, interval domain.TimeInterval) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("slot_date", domain.DateOnly(date)).
		Set("start_time", interval.Start).
		Set("end_time", interval.End).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isSlotTaken(err) {
			return fmt.Errorf("%w: UpdateSchedule - slot id=%d to %s", ErrSlotAlreadyBooked, id, interval)
		}
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateSchedule")
}

// Delete удаляет слот (физическое удаление)
// Для сохранения истории используйте перевод в cancelled
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSlot(row rowScanner) (*domain.BookedSlot, error) {
	var slot domain.BookedSlot
	var start, end types.TimeString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.BookingID,
		&slot.RoomID,
		&slot.PackageID,
		&slot.Date,
		&start,
		&end,
		&slot.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.Interval = domain.TimeInterval{Start: start, End: end}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
