package calendar

import (
	"context"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
)

// CalendarRepository интерфейс репозитория календаря
type CalendarRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.BusinessDay, error)
	Upsert(ctx context.Context, day *domain.BusinessDay) (*domain.BusinessDay, error)
	ListByMonth(ctx context.Context, filter domain.MonthFilter) ([]*domain.BusinessDay, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
