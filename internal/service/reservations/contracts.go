package reservations

import (
	"context"

	"github.com/shuchan/DH-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetDetailByID(ctx context.Context, id int64) (*domain.ReservationDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.ReservationDetail, error)
	ListByDate(ctx context.Context, filter domain.DateReservationsFilter) ([]*domain.ReservationDetail, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
