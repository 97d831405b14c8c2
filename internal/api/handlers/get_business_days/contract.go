package get_business_days

import (
	"context"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/service/calendar/models"
)

type CalendarService interface {
	ListMonth(ctx context.Context, year int, month time.Month) (*models.BusinessDayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
