package get_time_slots

import (
	"github.com/shuchan/DH-ReservationService/internal/domain"
	getTimeSlots "github.com/shuchan/DH-ReservationService/internal/usecase/get_time_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "12:30"
	Period    string `json:"period"`    // breakfast | lunch | dinner
	Available bool   `json:"available"`
}

// TimeSlotsResponse HTTP модель сетки слотов на дату
type TimeSlotsResponse struct {
	Date      string         `json:"date"` // "2026-03-15"
	IsHoliday bool           `json:"isHoliday"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimeSlots.Response) *TimeSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			Period:    string(s.Period),
			Available: s.Available,
		})
	}

	return &TimeSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		IsHoliday: resp.IsHoliday,
		Slots:     slots,
	}
}
