package cancel_reservation

import (
	"context"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/internal/infra/events"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetDetailByID(ctx context.Context, id int64) (*domain.ReservationDetail, error)
	CountByMenuID(ctx context.Context, menuID int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

// MenuRepository интерфейс репозитория меню
type MenuRepository interface {
	GetByProvideDate(ctx context.Context, provideDate time.Time) ([]*domain.Menu, error)
	SetLocked(ctx context.Context, id int64, locked bool) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.ReservationEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
