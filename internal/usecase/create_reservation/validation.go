package create_reservation

import (
	"fmt"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.MenuID <= 0 {
		return fmt.Errorf("%w: menuID must be positive", ErrInvalidInput)
	}

	if req.TimeSlot.IsZero() {
		return fmt.Errorf("%w: timeSlot is required", ErrInvalidInput)
	}

	if err := req.TimeSlot.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeSlot format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateLeadTime проверяет минимальный срок бронирования.
// При minLeadDays = 1 сегодня можно бронировать только на завтра и позже;
// бронирование на сам день подачи закрыто.
func validateLeadTime(provideDate time.Time, now time.Time, minLeadDays int) error {
	provideDateOnly := time.Date(provideDate.Year(), provideDate.Month(), provideDate.Day(),
		0, 0, 0, 0, time.UTC)
	nowDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	earliestAllowed := nowDate.AddDate(0, 0, minLeadDays)

	if provideDateOnly.Before(earliestAllowed) {
		return fmt.Errorf("%w: must reserve at least %d day(s) in advance", ErrTooSoonToReserve, minLeadDays)
	}

	return nil
}

// validateSlot проверяет, что слот принадлежит сетке и попадает в рабочее
// окно дня
func validateSlot(slot types.TimeString, day *domain.BusinessDay) error {
	if day.IsHoliday {
		return ErrHoliday
	}

	if domain.FindSlot(slot) == nil {
		return fmt.Errorf("%w: %s is not in the slot grid", ErrSlotNotAvailable, slot)
	}

	if !day.SlotWithinHours(slot) {
		return fmt.Errorf("%w: %s is outside working hours %s-%s",
			ErrSlotNotAvailable, slot, day.OpenTime, day.CloseTime)
	}

	return nil
}
