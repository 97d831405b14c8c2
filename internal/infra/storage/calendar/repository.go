package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/pkg/dbmetrics"
	"github.com/shuchan/DH-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с календарем рабочих дней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает расписание на дату.
// Возвращает ErrBusinessDayNotFound, если строки нет - вызывающая сторона
// подставляет расписание по умолчанию (см. domain.DefaultBusinessDay).
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.BusinessDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"date",
		"is_holiday",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("business_days").
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	var day domain.BusinessDay
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&day.Date,
		&day.IsHoliday,
		&day.OpenTime,
		&day.CloseTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBusinessDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan business day: %v", ErrScanRow, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return &day, nil
}

// Upsert создает или обновляет расписание на дату
func (r *Repository) Upsert(ctx context.Context, day *domain.BusinessDay) (*domain.BusinessDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("business_days").
		Columns(
			"date",
			"is_holiday",
			"open_time",
			"close_time",
		).
		Values(
			day.Date.Format(domain.DateFormat),
			day.IsHoliday,
			day.OpenTime,
			day.CloseTime,
		).
		Suffix(`ON CONFLICT (date) DO UPDATE SET
			is_holiday = EXCLUDED.is_holiday,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&day.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	day.CreatedAt = createdAt.Time
	day.UpdatedAt = updatedAt.Time

	return day, nil
}

// ListByMonth получает расписания за календарный месяц
func (r *Repository) ListByMonth(ctx context.Context, filter domain.MonthFilter) ([]*domain.BusinessDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	monthStart := time.Date(filter.Year, filter.Month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	query, args, err := psqlbuilder.Select(
		"id",
		"date",
		"is_holiday",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("business_days").
		Where(squirrel.GtOrEq{"date": monthStart.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"date": monthEnd.Format(domain.DateFormat)}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByMonth - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMonth - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var days []*domain.BusinessDay
	for rows.Next() {
		var day domain.BusinessDay
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&day.ID,
			&day.Date,
			&day.IsHoliday,
			&day.OpenTime,
			&day.CloseTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByMonth - scan business day: %v", ErrScanRow, err)
		}

		day.CreatedAt = createdAt.Time
		day.UpdatedAt = updatedAt.Time
		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByMonth - iterate rows: %v", ErrScanRow, err)
	}

	return days, nil
}
