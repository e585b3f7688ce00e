package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const pgUniqueViolation = "23505"

var configColumns = []string{
	"id",
	"salon_id",
	"employee_id",
	"granularity_minutes",
	"min_lead_time_minutes",
	"advance_booking_days",
	"max_suggestions",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с конфигурацией слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию слотов
func (r *Repository) Create(ctx context.Context, cfg *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("salon_slots_config").
		Columns(
			"salon_id",
			"employee_id",
			"granularity_minutes",
			"min_lead_time_minutes",
			"advance_booking_days",
			"max_suggestions",
		).
		Values(
			cfg.SalonID,
			cfg.EmployeeID,
			cfg.GranularityMinutes,
			cfg.MinLeadTimeMinutes,
			cfg.AdvanceBookingDays,
			cfg.MaxSuggestions,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateConfig
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// GetBySalonAndEmployee получает конфигурацию для салона и мастера
// employeeID == nil означает конфигурацию салона целиком
func (r *Repository) GetBySalonAndEmployee(ctx context.Context, salonID int64, employeeID *int64) (*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("salon_slots_config").
		Where(squirrel.Eq{"salon_id": salonID})

	if employeeID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": *employeeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndEmployee - build select query: %v", ErrBuildQuery, err)
	}

	cfg, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonAndEmployee - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Приоритет применения конфигурации:
// 1. Конфигурация конкретного мастера (salonID, employeeID)
// 2. Конфигурация салона целиком (salonID, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, salonID int64, employeeID *int64) (*domain.SalonSlotsConfig, error) {
	// 1. Пробуем получить конфигурацию конкретного мастера (если указан)
	if employeeID != nil {
		cfg, err := r.GetBySalonAndEmployee(ctx, salonID, employeeID)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (employee): %v", ErrExecQuery, err)
		}
	}

	// 2. Пробуем получить конфигурацию салона целиком
	cfg, err := r.GetBySalonAndEmployee(ctx, salonID, nil)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (salon): %v", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// GetAllBySalon получает все конфигурации салона (общую и для мастеров)
func (r *Repository) GetAllBySalon(ctx context.Context, salonID int64) ([]*domain.SalonSlotsConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("salon_slots_config").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("employee_id ASC NULLS FIRST"). // Общая конфигурация первой
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.SalonSlotsConfig, 0)
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllBySalon - scan row: %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllBySalon - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// Update обновляет конфигурацию по ID
func (r *Repository) Update(ctx context.Context, cfg *domain.SalonSlotsConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("salon_slots_config").
		Set("granularity_minutes", cfg.GranularityMinutes).
		Set("min_lead_time_minutes", cfg.MinLeadTimeMinutes).
		Set("advance_booking_days", cfg.AdvanceBookingDays).
		Set("max_suggestions", cfg.MaxSuggestions).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.SalonSlotsConfig, error) {
	var cfg domain.SalonSlotsConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cfg.ID,
		&cfg.SalonID,
		&cfg.EmployeeID,
		&cfg.GranularityMinutes,
		&cfg.MinLeadTimeMinutes,
		&cfg.AdvanceBookingDays,
		&cfg.MaxSuggestions,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
