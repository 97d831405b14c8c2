package update_menu

import (
	"context"

	"github.com/shuchan/DH-ReservationService/internal/service/menus/models"
)

type MenusService interface {
	Update(ctx context.Context, id int64, req *models.UpdateMenuRequest) (*models.MenuResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
