package menus

import (
	"context"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
)

// MenuRepository интерфейс репозитория меню
type MenuRepository interface {
	Create(ctx context.Context, menu *domain.Menu) (*domain.Menu, error)
	GetByID(ctx context.Context, id int64) (*domain.Menu, error)
	GetByProvideDate(ctx context.Context, provideDate time.Time) ([]*domain.Menu, error)
	CountByProvideDate(ctx context.Context, provideDate time.Time) (int, error)
	Update(ctx context.Context, id int64, name string) (*domain.Menu, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CountByMenuID(ctx context.Context, menuID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
