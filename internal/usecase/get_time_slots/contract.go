package get_time_slots

import (
	"context"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
)

// CalendarRepository интерфейс репозитория календаря рабочих дней
type CalendarRepository interface {
	GetByDate(ctx context.Context, date time.Time) (*domain.BusinessDay, error)
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
