package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/pkg/dbmetrics"
	"github.com/shuchan/DH-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// При создании с проверкой эксклюзивности меню вызов обязан идти внутри
// сериализуемой транзакции (см. usecase create_reservation).
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"menu_id",
			"user_id",
			"time_slot",
		).
		Values(
			reservation.MenuID,
			reservation.UserID,
			reservation.TimeSlot,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		// 23505 - unique_violation (user_id, menu_id, time_slot)
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: Create - user %d slot %s", ErrDuplicateReservation,
				reservation.UserID, reservation.TimeSlot)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"menu_id",
		"user_id",
		"time_slot",
		"created_at",
	).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var reservation domain.Reservation
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.MenuID,
		&reservation.UserID,
		&reservation.TimeSlot,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	reservation.CreatedAt = createdAt.Time

	return &reservation, nil
}

// GetDetailByID получает бронирование по ID вместе с данными меню
func (r *Repository) GetDetailByID(ctx context.Context, id int64) (*domain.ReservationDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.detailSelect().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailByID - build select query: %v", ErrBuildQuery, err)
	}

	var detail domain.ReservationDetail
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&detail.ID,
		&detail.MenuID,
		&detail.UserID,
		&detail.TimeSlot,
		&detail.MenuNo,
		&detail.MenuName,
		&detail.ProvideDate,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailByID - scan reservation: %v", ErrScanRow, err)
	}

	detail.CreatedAt = createdAt.Time

	return &detail, nil
}

// ListByUser получает бронирования пользователя, новые даты первыми
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.ReservationDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.detailSelect().
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("m.provide_date DESC, r.time_slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetails(rows, "ListByUser")
}

// ListByDate получает бронирования на дату с опциональным фильтром по
// пользователю. Внутри транзакции строки бронирований блокируются
// (FOR UPDATE OF r) - используется usecase'ом создания для проверки
// эксклюзивности меню на дату.
func (r *Repository) ListByDate(ctx context.Context, filter domain.DateReservationsFilter) ([]*domain.ReservationDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.detailSelect().
		Where(squirrel.Eq{"m.provide_date": filter.ProvideDate.Format(domain.DateFormat)}).
		OrderBy("r.time_slot ASC, r.id ASC")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.user_id": *filter.UserID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetails(rows, "ListByDate")
}

// CountByMenuID возвращает количество бронирований меню.
// Используется при отмене, чтобы понять, осталось ли меню закрепленным.
func (r *Repository) CountByMenuID(ctx context.Context, menuID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{"menu_id": menuID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByMenuID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByMenuID - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Delete удаляет бронирование. Отмена физически удаляет строку,
// история отмен не хранится.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (r *Repository) detailSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"r.id",
		"r.menu_id",
		"r.user_id",
		"r.time_slot",
		"m.menu_no",
		"m.name",
		"m.provide_date",
		"r.created_at",
	).
		From("reservations r").
		Join("menus m ON m.id = r.menu_id")
}

func (r *Repository) scanDetails(rows *sql.Rows, method string) ([]*domain.ReservationDetail, error) {
	var details []*domain.ReservationDetail

	for rows.Next() {
		var detail domain.ReservationDetail
		var createdAt sql.NullTime

		err := rows.Scan(
			&detail.ID,
			&detail.MenuID,
			&detail.UserID,
			&detail.TimeSlot,
			&detail.MenuNo,
			&detail.MenuName,
			&detail.ProvideDate,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %v", ErrScanRow, method, err)
		}

		detail.CreatedAt = createdAt.Time
		details = append(details, &detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, method, err)
	}

	return details, nil
}
