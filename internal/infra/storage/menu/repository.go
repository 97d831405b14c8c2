package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/pkg/dbmetrics"
	"github.com/shuchan/DH-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с меню
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория меню
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое меню на дату
func (r *Repository) Create(ctx context.Context, menu *domain.Menu) (*domain.Menu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("menus").
		Columns(
			"menu_no",
			"name",
			"provide_date",
			"locked",
		).
		Values(
			menu.MenuNo,
			menu.Name,
			menu.ProvideDate,
			menu.Locked,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&menu.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		// 23505 - unique_violation (menu_no уникален в рамках даты)
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: Create - menu_no %s", ErrDuplicateMenuNo, menu.MenuNo)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	menu.CreatedAt = createdAt.Time
	menu.UpdatedAt = updatedAt.Time

	return menu, nil
}

// GetByID получает меню по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Menu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"menu_no",
		"name",
		"provide_date",
		"locked",
		"created_at",
		"updated_at",
	).
		From("menus").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanMenuRow(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByProvideDate получает все меню на дату, упорядоченные по номеру.
// Внутри транзакции строки блокируются (FOR UPDATE) - это сериализует
// конкурентные бронирования на одну дату.
func (r *Repository) GetByProvideDate(ctx context.Context, provideDate time.Time) ([]*domain.Menu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"menu_no",
		"name",
		"provide_date",
		"locked",
		"created_at",
		"updated_at",
	).
		From("menus").
		Where(squirrel.Eq{"provide_date": provideDate.Format(domain.DateFormat)}).
		OrderBy("menu_no ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvideDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProvideDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanMenus(rows, "GetByProvideDate")
}

// CountByProvideDate возвращает количество меню на дату.
// Используется для генерации порядкового номера меню.
func (r *Repository) CountByProvideDate(ctx context.Context, provideDate time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("menus").
		Where(squirrel.Eq{"provide_date": provideDate.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByProvideDate - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByProvideDate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// SetLocked закрепляет или освобождает меню
func (r *Repository) SetLocked(ctx context.Context, id int64, locked bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("menus").
		Set("locked", locked).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetLocked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetLocked - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetLocked - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrMenuNotFound
	}

	return nil
}

// Update обновляет название меню
func (r *Repository) Update(ctx context.Context, id int64, name string) (*domain.Menu, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("menus").
		Set("name", name).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, menu_no, name, provide_date, locked, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanMenuRow(executor.QueryRowContext(ctx, query, args...), "Update")
}

// Delete удаляет меню
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("menus").
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
		return ErrMenuNotFound
	}

	return nil
}

func (r *Repository) scanMenuRow(row *sql.Row, method string) (*domain.Menu, error) {
	var menu domain.Menu
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&menu.ID,
		&menu.MenuNo,
		&menu.Name,
		&menu.ProvideDate,
		&menu.Locked,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan menu: %v", ErrScanRow, method, err)
	}

	menu.CreatedAt = createdAt.Time
	menu.UpdatedAt = updatedAt.Time

	return &menu, nil
}

func (r *Repository) scanMenus(rows *sql.Rows, method string) ([]*domain.Menu, error) {
	var menus []*domain.Menu

	for rows.Next() {
		var menu domain.Menu
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&menu.ID,
			&menu.MenuNo,
			&menu.Name,
			&menu.ProvideDate,
			&menu.Locked,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan menu: %v", ErrScanRow, method, err)
		}

		menu.CreatedAt = createdAt.Time
		menu.UpdatedAt = updatedAt.Time
		menus = append(menus, &menu)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrScanRow, method, err)
	}

	return menus, nil
}
