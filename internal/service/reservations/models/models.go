package models

import (
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
)

// Request модели

// GetDateReservationsRequest запрос на получение бронирований на дату
type GetDateReservationsRequest struct {
	Date   time.Time `json:"date"`
	UserID *int64    `json:"userId,omitempty"` // Фильтр по пользователю (опционально)
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          int64  `json:"id"`
	MenuID      int64  `json:"menuId"`
	UserID      int64  `json:"userId"`
	TimeSlot    string `json:"timeSlot"`    // "12:30"
	MenuNo      string `json:"menuNo"`      // "202603150001"
	MenuName    string `json:"menuName"`
	ProvideDate string `json:"provideDate"` // "2026-03-15"
	CreatedAt   string `json:"createdAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainDetail конвертирует domain.ReservationDetail в ReservationResponse
func FromDomainDetail(d *domain.ReservationDetail) *ReservationResponse {
	return &ReservationResponse{
		ID:          d.ID,
		MenuID:      d.MenuID,
		UserID:      d.UserID,
		TimeSlot:    string(d.TimeSlot),
		MenuNo:      d.MenuNo,
		MenuName:    d.MenuName,
		ProvideDate: d.ProvideDate.Format(domain.DateFormat),
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainDetailList конвертирует список domain.ReservationDetail
func FromDomainDetailList(details []*domain.ReservationDetail) *ReservationListResponse {
	result := &ReservationListResponse{Reservations: make([]ReservationResponse, 0, len(details))}
	for _, d := range details {
		result.Reservations = append(result.Reservations, *FromDomainDetail(d))
	}
	return result
}
