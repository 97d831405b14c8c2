package get_date_menus

import (
	"context"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/service/menus/models"
)

type MenusService interface {
	MenusForDate(ctx context.Context, date time.Time) (*models.MenuListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
