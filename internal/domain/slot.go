package domain

import "github.com/shuchan/DH-ReservationService/pkg/types"

// MealPeriod groups time slots into breakfast, lunch and dinner
type MealPeriod string

const (
	PeriodBreakfast MealPeriod = "breakfast"
	PeriodLunch     MealPeriod = "lunch"
	PeriodDinner    MealPeriod = "dinner"
)

// TimeSlot represents one entry of the fixed daily slot grid
type TimeSlot struct {
	StartTime types.TimeString
	Period    MealPeriod
}

// AnnotatedSlot is a grid slot with its availability for a concrete date
type AnnotatedSlot struct {
	StartTime types.TimeString
	Period    MealPeriod
	Available bool
}

// SlotGrid фиксированная сетка слотов столовой.
// Сетка одинакова для всех дат; доступность отдельных слотов
// определяется рабочим окном дня и признаком выходного.
var SlotGrid = []TimeSlot{
	{StartTime: "07:30", Period: PeriodBreakfast},
	{StartTime: "08:00", Period: PeriodBreakfast},
	{StartTime: "08:30", Period: PeriodBreakfast},
	{StartTime: "12:00", Period: PeriodLunch},
	{StartTime: "12:30", Period: PeriodLunch},
	{StartTime: "13:00", Period: PeriodLunch},
	{StartTime: "13:30", Period: PeriodLunch},
	{StartTime: "18:00", Period: PeriodDinner},
	{StartTime: "18:30", Period: PeriodDinner},
	{StartTime: "19:00", Period: PeriodDinner},
	{StartTime: "19:30", Period: PeriodDinner},
}

// FindSlot returns the grid slot with the given start time, or nil
// if the time is not part of the grid.
func FindSlot(startTime types.TimeString) *TimeSlot {
	for i := range SlotGrid {
		if SlotGrid[i].StartTime == startTime {
			return &SlotGrid[i]
		}
	}
	return nil
}
