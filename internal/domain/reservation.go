package domain

import (
	"time"

	"github.com/shuchan/DH-ReservationService/pkg/types"
)

// Reservation represents a seat reservation for a specific menu and time slot
type Reservation struct {
	ID        int64
	MenuID    int64
	UserID    int64
	TimeSlot  types.TimeString // Начало слота (HH:MM), всегда из фиксированной сетки
	CreatedAt time.Time
}

// ReservationDetail is a reservation joined with its menu data.
// Used for list views where the client needs the menu name and provide date.
type ReservationDetail struct {
	ID          int64
	MenuID      int64
	UserID      int64
	TimeSlot    types.TimeString
	MenuNo      string
	MenuName    string
	ProvideDate time.Time
	CreatedAt   time.Time
}

// BelongsTo returns true if the reservation was made by the given user
func (r *Reservation) BelongsTo(userID int64) bool {
	return r.UserID == userID
}

// DateReservationsFilter фильтр для выборки бронирований на дату
type DateReservationsFilter struct {
	ProvideDate time.Time // Обязательный параметр, усекается до даты
	UserID      *int64    // Фильтр по пользователю (опционально)
}
