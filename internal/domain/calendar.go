package domain

import (
	"time"

	"github.com/shuchan/DH-ReservationService/pkg/types"
)

// BusinessDay represents the dining hall schedule for a single date.
// Dates without a row fall back to DefaultBusinessDay.
type BusinessDay struct {
	ID        int64
	Date      time.Time
	IsHoliday bool
	OpenTime  types.TimeString // Начало рабочего окна (HH:MM)
	CloseTime types.TimeString // Конец рабочего окна, включительно для начала слота
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultBusinessDay returns the schedule used when no row exists for the date
func DefaultBusinessDay(date time.Time) BusinessDay {
	return BusinessDay{
		Date:      date,
		IsHoliday: false,
		OpenTime:  types.TimeString(DefaultOpenTime),
		CloseTime: types.TimeString(DefaultCloseTime),
	}
}

// SlotWithinHours returns true if a slot starting at slotStart fits the
// working window. Граница включительная: слот, начинающийся ровно в
// CloseTime, разрешен.
func (d *BusinessDay) SlotWithinHours(slotStart types.TimeString) bool {
	if d.IsHoliday {
		return false
	}
	return !slotStart.IsBefore(d.OpenTime) && !slotStart.IsAfter(d.CloseTime)
}

// MonthFilter фильтр для выборки рабочих дней за месяц
type MonthFilter struct {
	Year  int
	Month time.Month
}
