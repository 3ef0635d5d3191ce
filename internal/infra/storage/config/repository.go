package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-VenueBookingService/pkg/psqlbuilder"
)

const tableName = "slot_grid_configs"

var configColumns = []string{
	"id",
	"package_id",
	"room_id",
	"grid_start",
	"grid_end",
	"interval_minutes",
	"service_duration",
	"service_duration_unit",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией сетки слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет конфигурацию для пары (package_id, room_id)
// room_id = NULL означает конфигурацию пакета для всех комнат
func (r *Repository) Upsert(ctx context.Context, config *domain.SlotGridConfig) (*domain.SlotGridConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpsertQuery(config).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// buildUpsertQuery INSERT ... ON CONFLICT по частичному уникальному индексу,
// соответствующему уровню конфигурации
func buildUpsertQuery(config *domain.SlotGridConfig) squirrel.InsertBuilder {
	conflictTarget := "(package_id) WHERE room_id IS NULL"
	if config.RoomID != nil {
		conflictTarget = "(package_id, room_id) WHERE room_id IS NOT NULL"
	}

	return psqlbuilder.Insert(tableName).
		Columns(
			"package_id",
			"room_id",
			"grid_start",
			"grid_end",
			"interval_minutes",
			"service_duration",
			"service_duration_unit",
		).
		Values(
			config.PackageID,
			config.RoomID,
			config.GridStart,
			config.GridEnd,
			config.IntervalMinutes,
			config.ServiceDuration,
			config.ServiceDurationUnit,
		).
		Suffix("ON CONFLICT " + conflictTarget + " DO UPDATE SET " +
			"grid_start = EXCLUDED.grid_start, " +
			"grid_end = EXCLUDED.grid_end, " +
			"interval_minutes = EXCLUDED.interval_minutes, " +
			"service_duration = EXCLUDED.service_duration, " +
			"service_duration_unit = EXCLUDED.service_duration_unit, " +
			"updated_at = NOW() " +
			"RETURNING id, created_at, updated_at")
}

// GetByPackageAndRoom получает конфигурацию ровно указанного уровня
// roomID = nil ищет конфигурацию пакета для всех комнат
func (r *Repository) GetByPackageAndRoom(ctx context.Context, packageID int64, roomID *int64) (*domain.SlotGridConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From(tableName).
		Where(squirrel.Eq{"package_id": packageID})

	// Фильтрация по room_id (NULL или конкретное значение)
	if roomID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *roomID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPackageAndRoom - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPackageAndRoom - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// 1. Конфигурация пакета в конкретной комнате (packageID, roomID)
// 2. Конфигурация пакета для всех комнат (packageID, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, packageID int64, roomID *int64) (*domain.SlotGridConfig, error) {
	// 1. Конфигурация для конкретной комнаты (если комната указана)
	if roomID != nil {
		config, err := r.GetByPackageAndRoom(ctx, packageID, roomID)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (room): %v", ErrExecQuery, err)
		}
	}

	// 2. Конфигурация пакета
	config, err := r.GetByPackageAndRoom(ctx, packageID, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (package): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAllByPackage получает все конфигурации пакета (общую и для комнат)
func (r *Repository) GetAllByPackage(ctx context.Context, packageID int64) ([]*domain.SlotGridConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From(tableName).
		Where(squirrel.Eq{"package_id": packageID}).
		OrderBy("room_id ASC NULLS FIRST"). // Общая конфигурация первой
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByPackage - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByPackage - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.SlotGridConfig, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByPackage - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByPackage - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// DeleteByPackageAndRoom удаляет конфигурацию указанного уровня
func (r *Repository) DeleteByPackageAndRoom(ctx context.Context, packageID int64, roomID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"package_id": packageID})

	if roomID == nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"room_id": nil})
	} else {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"room_id": *roomID})
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByPackageAndRoom - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByPackageAndRoom - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByPackageAndRoom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfig(row rowScanner) (*domain.SlotGridConfig, error) {
	var config domain.SlotGridConfig
	var roomID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.PackageID,
		&roomID,
		&config.GridStart,
		&config.GridEnd,
		&config.IntervalMinutes,
		&config.ServiceDuration,
		&config.ServiceDurationUnit,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if roomID.Valid {
		config.RoomID = &roomID.Int64
	}
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
