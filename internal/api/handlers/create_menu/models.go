package create_menu

import (
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/internal/service/menus/models"
)

// CreateMenuRequest HTTP request model
type CreateMenuRequest struct {
	Name        string `json:"name"`
	ProvideDate string `json:"provideDate"` // "2026-03-15"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateMenuRequest) ToServiceRequest() (*models.CreateMenuRequest, error) {
	provideDate, err := time.Parse(domain.DateFormat, r.ProvideDate)
	if err != nil {
		return nil, err
	}

	return &models.CreateMenuRequest{
		Name:        r.Name,
		ProvideDate: provideDate,
	}, nil
}
