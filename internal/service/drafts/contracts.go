package drafts

import (
	"context"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/infra/storage/draft"
	"github.com/shuchan/DH-ReservationService/internal/usecase/create_reservation"
)

// DraftStore интерфейс хранилища черновиков
type DraftStore interface {
	Save(ctx context.Context, d *draft.Draft) (string, error)
	Get(ctx context.Context, token string) (*draft.Draft, error)
	Consume(ctx context.Context, token string) (*draft.Draft, error)
}

// CreateReservationUseCase интерфейс usecase создания бронирования
type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *create_reservation.Request) (*create_reservation.Response, error)
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
