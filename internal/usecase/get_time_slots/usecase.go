package get_time_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	calendarRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/calendar"
)

// UseCase use case для получения сетки слотов на дату
type UseCase struct {
	calendarRepo CalendarRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(calendarRepo CalendarRepository, logger Logger) *UseCase {
	return &UseCase{
		calendarRepo: calendarRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает полную сетку слотов на дату с признаком доступности.
// Сетка всегда полная: недоступные слоты помечаются, а не выфильтровываются.
// Прошедшие даты и выходные возвращают сетку без доступных слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	day, err := uc.calendarRepo.GetByDate(ctx, req.Date)
	if err != nil {
		if !errors.Is(err, calendarRepo.ErrBusinessDayNotFound) {
			uc.logger.Error("GetTimeSlots: failed to get business day for %s: %v",
				req.Date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to get business day: %v", ErrInternal, err)
		}
		defaultDay := domain.DefaultBusinessDay(req.Date)
		day = &defaultDay
	}

	inPast := isDateInPast(req.Date, now)

	slots := make([]domain.AnnotatedSlot, 0, len(domain.SlotGrid))
	for _, slot := range domain.SlotGrid {
		available := !inPast && day.SlotWithinHours(slot.StartTime)
		slots = append(slots, domain.AnnotatedSlot{
			StartTime: slot.StartTime,
			Period:    slot.Period,
			Available: available,
		})
	}

	return &Response{
		Date:      req.Date,
		IsHoliday: day.IsHoliday,
		Slots:     slots,
	}, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
