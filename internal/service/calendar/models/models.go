package models

import (
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/pkg/types"
)

// Request модели

// UpsertBusinessDayRequest запрос на создание/обновление расписания дня
type UpsertBusinessDayRequest struct {
	IsHoliday bool   `json:"isHoliday"`
	OpenTime  string `json:"openTime"`  // "07:30"
	CloseTime string `json:"closeTime"` // "19:30"
}

// ToDomain конвертирует запрос в domain.BusinessDay
func (r *UpsertBusinessDayRequest) ToDomain(date time.Time) *domain.BusinessDay {
	return &domain.BusinessDay{
		Date:      date,
		IsHoliday: r.IsHoliday,
		OpenTime:  types.TimeString(r.OpenTime),
		CloseTime: types.TimeString(r.CloseTime),
	}
}

// Response модели

// BusinessDayResponse ответ с расписанием дня
type BusinessDayResponse struct {
	Date      string `json:"date"` // "2026-03-15"
	IsHoliday bool   `json:"isHoliday"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsDefault bool   `json:"isDefault"` // true, если строки в календаре нет
}

// BusinessDayListResponse ответ со списком расписаний
type BusinessDayListResponse struct {
	Days []BusinessDayResponse `json:"days"`
}

// FromDomainDay конвертирует domain.BusinessDay в BusinessDayResponse
func FromDomainDay(d *domain.BusinessDay, isDefault bool) *BusinessDayResponse {
	return &BusinessDayResponse{
		Date:      d.Date.Format(domain.DateFormat),
		IsHoliday: d.IsHoliday,
		OpenTime:  string(d.OpenTime),
		CloseTime: string(d.CloseTime),
		IsDefault: isDefault,
	}
}

// FromDomainDayList конвертирует список domain.BusinessDay
func FromDomainDayList(days []*domain.BusinessDay) *BusinessDayListResponse {
	result := &BusinessDayListResponse{Days: make([]BusinessDayResponse, 0, len(days))}
	for _, d := range days {
		result.Days = append(result.Days, *FromDomainDay(d, false))
	}
	return result
}
