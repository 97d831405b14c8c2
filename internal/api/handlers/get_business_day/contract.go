package get_business_day

import (
	"context"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/service/calendar/models"
)

type CalendarService interface {
	GetByDate(ctx context.Context, date time.Time) (*models.BusinessDayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
