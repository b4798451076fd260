package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

const tableScheduleConfig = "schedule_config"

var configColumns = []string{
	"id",
	"staff_id",
	"weekday",
	"open_time",
	"close_time",
	"is_open",
	"slot_granularity_minutes",
	"advance_booking_days",
	"min_booking_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания
func (r *Repository) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableScheduleConfig).
		Columns(
			"staff_id",
			"weekday",
			"open_time",
			"close_time",
			"is_open",
			"slot_granularity_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			config.StaffID,
			weekdayValue(config.Weekday),
			config.OpenTime,
			config.CloseTime,
			config.IsOpen,
			config.SlotGranularityMinutes,
			config.AdvanceBookingDays,
			config.MinBookingNoticeMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrDuplicateConfig
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByID получает конфигурацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From(tableScheduleConfig).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan config: %w", ErrScanRow, err)
	}

	return config, nil
}

// GetByStaffAndWeekday получает конфигурацию ровно для указанного уровня иерархии
// nil в staffID или weekday означает "для всех"
func (r *Repository) GetByStaffAndWeekday(ctx context.Context, staffID *int64, weekday *time.Weekday) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From(tableScheduleConfig)

	// Фильтрация по staff_id (NULL или конкретное значение)
	if staffID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *staffID})
	}

	// Фильтрация по weekday (NULL или конкретное значение)
	if weekday == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"weekday": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"weekday": int(*weekday)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndWeekday - build select query: %w", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndWeekday - scan config: %w", ErrScanRow, err)
	}

	return config, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Приоритет применения конфигурации:
// 1. Мастер в конкретный день недели (staffID, weekday)
// 2. Мастер во все дни (staffID, NULL)
// 3. Все мастера в конкретный день недели (NULL, weekday)
// 4. Глобальная конфигурация салона (NULL, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, staffID *int64, weekday time.Weekday) (*domain.ScheduleConfig, error) {
	for i, level := range hierarchyLevels(staffID, weekday) {
		config, err := r.GetByStaffAndWeekday(ctx, level.staffID, level.weekday)
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level %d (%s): %w", ErrExecQuery, i+1, level.name, err)
		}
	}

	// Если конфигурация не найдена ни на одном уровне
	return nil, ErrConfigNotFound
}

type hierarchyLevel struct {
	name    string
	staffID *int64
	weekday *time.Weekday
}

// hierarchyLevels уровни поиска от самого специфичного к глобальному
func hierarchyLevels(staffID *int64, weekday time.Weekday) []hierarchyLevel {
	levels := make([]hierarchyLevel, 0, 4)
	if staffID != nil {
		levels = append(levels,
			hierarchyLevel{name: "staff+weekday", staffID: staffID, weekday: &weekday},
			hierarchyLevel{name: "staff", staffID: staffID},
		)
	}
	return append(levels,
		hierarchyLevel{name: "weekday", weekday: &weekday},
		hierarchyLevel{name: "global"},
	)
}

// GetAll получает все конфигурации (глобальная первой)
func (r *Repository) GetAll(ctx context.Context) ([]*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From(tableScheduleConfig).
		OrderBy("staff_id ASC NULLS FIRST, weekday ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ScheduleConfig, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %w", ErrScanRow, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %w", ErrScanRow, err)
	}

	return configs, nil
}

// Update обновляет значения конфигурации (уровень иерархии не меняется)
func (r *Repository) Update(ctx context.Context, id int64, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableScheduleConfig).
		Set("open_time", config.OpenTime).
		Set("close_time", config.CloseTime).
		Set("is_open", config.IsOpen).
		Set("slot_granularity_minutes", config.SlotGranularityMinutes).
		Set("advance_booking_days", config.AdvanceBookingDays).
		Set("min_booking_notice_minutes", config.MinBookingNoticeMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	config.ID = id
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Delete удаляет конфигурацию
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableScheduleConfig).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var weekday sql.NullInt16
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.StaffID,
		&weekday,
		&config.OpenTime,
		&config.CloseTime,
		&config.IsOpen,
		&config.SlotGranularityMinutes,
		&config.AdvanceBookingDays,
		&config.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if weekday.Valid {
		wd := time.Weekday(weekday.Int16)
		config.Weekday = &wd
	}
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

func weekdayValue(w *time.Weekday) interface{} {
	if w == nil {
		return nil
	}
	return int(*w)
}
