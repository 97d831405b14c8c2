package get_time_slots

import (
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	Date time.Time // Дата, для которой запрашивается сетка
}

// Response модель ответа со слотами дня
type Response struct {
	Date      time.Time             // Запрошенная дата
	IsHoliday bool                  // Выходной день
	Slots     []domain.AnnotatedSlot // Полная сетка с признаком доступности
}
