package create_reservation

import (
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	createReservation "github.com/shuchan/DH-ReservationService/internal/usecase/create_reservation"
	"github.com/shuchan/DH-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	MenuID   int64  `json:"menuId"`
	TimeSlot string `json:"timeSlot"` // "12:30"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID          int64  `json:"id"`
	MenuID      int64  `json:"menuId"`
	UserID      int64  `json:"userId"`
	TimeSlot    string `json:"timeSlot"`
	MenuNo      string `json:"menuNo"`
	MenuName    string `json:"menuName"`
	ProvideDate string `json:"provideDate"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	timeSlot, err := types.NewTimeStringFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:   userID,
		MenuID:   r.MenuID,
		TimeSlot: timeSlot,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:          resp.ID,
		MenuID:      resp.MenuID,
		UserID:      resp.UserID,
		TimeSlot:    resp.TimeSlot.String(),
		MenuNo:      resp.MenuNo,
		MenuName:    resp.MenuName,
		ProvideDate: resp.ProvideDate.Format(domain.DateFormat),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
