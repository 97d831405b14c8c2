package models

import (
	"time"

	"github.com/shuchan/DH-ReservationService/internal/usecase/create_reservation"
)

// Request модели

// SaveDraftRequest запрос на сохранение черновика бронирования
type SaveDraftRequest struct {
	UserID   int64  `json:"userId"`
	MenuID   int64  `json:"menuId"`
	TimeSlot string `json:"timeSlot"` // "12:30"
}

// Response модели

// SaveDraftResponse ответ с токеном черновика
type SaveDraftResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"` // RFC3339
}

// ResumeDraftResponse ответ с созданным из черновика бронированием
type ResumeDraftResponse struct {
	ID          int64  `json:"id"`
	MenuID      int64  `json:"menuId"`
	UserID      int64  `json:"userId"`
	TimeSlot    string `json:"timeSlot"`
	MenuNo      string `json:"menuNo"`
	MenuName    string `json:"menuName"`
	ProvideDate string `json:"provideDate"`
	CreatedAt   string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ usecase создания
func FromUseCaseResponse(r *create_reservation.Response) *ResumeDraftResponse {
	return &ResumeDraftResponse{
		ID:          r.ID,
		MenuID:      r.MenuID,
		UserID:      r.UserID,
		TimeSlot:    string(r.TimeSlot),
		MenuNo:      r.MenuNo,
		MenuName:    r.MenuName,
		ProvideDate: r.ProvideDate.Format("2006-01-02"),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}
