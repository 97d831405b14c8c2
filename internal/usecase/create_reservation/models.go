package create_reservation

import (
	"time"

	"github.com/shuchan/DH-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID   int64            // ID пользователя
	MenuID   int64            // ID выбранного меню
	TimeSlot types.TimeString // Время слота из фиксированной сетки (например, "12:30")
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64            // ID созданного бронирования
	MenuID      int64            // ID меню
	UserID      int64            // ID пользователя
	TimeSlot    types.TimeString // Время слота
	MenuNo      string           // Номер меню
	MenuName    string           // Название меню
	ProvideDate time.Time        // Дата предоставления
	CreatedAt   time.Time        // Время создания
}
