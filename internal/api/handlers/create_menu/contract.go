package create_menu

import (
	"context"

	"github.com/shuchan/DH-ReservationService/internal/service/menus/models"
)

type MenusService interface {
	Create(ctx context.Context, req *models.CreateMenuRequest) (*models.MenuResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
