package create_reservation

import (
	"context"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/internal/infra/events"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	ListByDate(ctx context.Context, filter domain.DateReservationsFilter) ([]*domain.ReservationDetail, error)
}

// MenuRepository интерфейс репозитория меню
type MenuRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Menu, error)
	GetByProvideDate(ctx context.Context, provideDate time.Time) ([]*domain.Menu, error)
	SetLocked(ctx context.Context, id int64, locked bool) error
}

// CalendarRepository интерфейс репозитория календаря рабочих дней
type CalendarRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.BusinessDay, error)
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
