package get_date_reservations

import (
	"context"

	"github.com/shuchan/DH-ReservationService/internal/service/reservations/models"
)

type ReservationsService interface {
	GetDateReservations(ctx context.Context, req *models.GetDateReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
