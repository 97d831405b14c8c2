package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	calendarRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/calendar"
	"github.com/shuchan/DH-ReservationService/internal/service/calendar/models"
)

// Service сервис для управления календарем рабочих дней
type Service struct {
	calendarRepo CalendarRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса календаря
func NewService(calendarRepo CalendarRepository, logger Logger) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// GetByDate возвращает расписание на дату.
// Для дат без строки в календаре возвращается расписание по умолчанию.
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*models.BusinessDayResponse, error) {
	day, err := s.calendarRepo.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrBusinessDayNotFound) {
			defaultDay := domain.DefaultBusinessDay(date)
			return models.FromDomainDay(&defaultDay, true), nil
		}
		s.logger.Error("GetByDate: repository error for date %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDay(day, false), nil
}

// Upsert создает или обновляет расписание на дату
func (s *Service) Upsert(ctx context.Context, date time.Time, req *models.UpsertBusinessDayRequest) (*models.BusinessDayResponse, error) {
	s.logger.Info("UpsertBusinessDay: date=%s, holiday=%v, hours=%s-%s",
		date.Format(domain.DateFormat), req.IsHoliday, req.OpenTime, req.CloseTime)

	day := req.ToDomain(date)
	if err := validateDay(day); err != nil {
		s.logger.Warn("UpsertBusinessDay: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.calendarRepo.Upsert(ctx, day)
	if err != nil {
		s.logger.Error("UpsertBusinessDay: repository error for date %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertBusinessDay: successfully saved business day id=%d", saved.ID)
	return models.FromDomainDay(saved, false), nil
}

// ListMonth возвращает расписания за календарный месяц.
// Возвращаются только явно заданные дни; остальные подчиняются
// расписанию по умолчанию.
func (s *Service) ListMonth(ctx context.Context, year int, month time.Month) (*models.BusinessDayListResponse, error) {
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: invalid month", ErrInvalidInput)
	}

	days, err := s.calendarRepo.ListByMonth(ctx, domain.MonthFilter{Year: year, Month: month})
	if err != nil {
		s.logger.Error("ListMonth: repository error for %d-%02d: %v", year, month, err)
		return nil, fmt.Errorf("%w: ListMonth - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDayList(days), nil
}

func validateDay(day *domain.BusinessDay) error {
	if day.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// В выходной рабочие часы не проверяются
	if day.IsHoliday {
		return nil
	}

	if err := day.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}
	if err := day.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}
	if day.CloseTime.IsBefore(day.OpenTime) {
		return fmt.Errorf("%w: closeTime must not be before openTime", ErrInvalidInput)
	}

	return nil
}
