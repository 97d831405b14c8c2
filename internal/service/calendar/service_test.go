package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	calendarRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/calendar"
	"github.com/shuchan/DH-ReservationService/internal/service/calendar/models"
)

type fakeCalendarRepo struct {
	days map[string]*domain.BusinessDay
}

func newFakeCalendarRepo(days ...*domain.BusinessDay) *fakeCalendarRepo {
	r := &fakeCalendarRepo{days: make(map[string]*domain.BusinessDay)}
	for _, d := range days {
		r.days[d.Date.Format(domain.DateFormat)] = d
	}
	return r
}

func (r *fakeCalendarRepo) GetByDate(_ context.Context, date time.Time) (*domain.BusinessDay, error) {
	d, ok := r.days[date.Format(domain.DateFormat)]
	if !ok {
		return nil, calendarRepo.ErrBusinessDayNotFound
	}
	return d, nil
}

func (r *fakeCalendarRepo) Upsert(_ context.Context, day *domain.BusinessDay) (*domain.BusinessDay, error) {
	saved := *day
	saved.ID = int64(len(r.days) + 1)
	r.days[day.Date.Format(domain.DateFormat)] = &saved
	return &saved, nil
}

func (r *fakeCalendarRepo) ListByMonth(_ context.Context, filter domain.MonthFilter) ([]*domain.BusinessDay, error) {
	var result []*domain.BusinessDay
	for _, d := range r.days {
		if d.Date.Year() == filter.Year && d.Date.Month() == filter.Month {
			result = append(result, d)
		}
	}
	return result, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGetByDate_FallsBackToDefault(t *testing.T) {
	svc := NewService(newFakeCalendarRepo(), nopLogger{})

	resp, err := svc.GetByDate(context.Background(), date(2024, time.March, 15))

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	assert.False(t, resp.IsHoliday)
	assert.Equal(t, domain.DefaultOpenTime, resp.OpenTime)
	assert.Equal(t, domain.DefaultCloseTime, resp.CloseTime)
}

func TestGetByDate_ExplicitDay(t *testing.T) {
	day := &domain.BusinessDay{Date: date(2024, time.March, 15), IsHoliday: true, OpenTime: "07:30", CloseTime: "19:30"}
	svc := NewService(newFakeCalendarRepo(day), nopLogger{})

	resp, err := svc.GetByDate(context.Background(), day.Date)

	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	assert.True(t, resp.IsHoliday)
}

func TestUpsert_Validation(t *testing.T) {
	svc := NewService(newFakeCalendarRepo(), nopLogger{})
	targetDate := date(2024, time.March, 15)

	// Корректное расписание
	resp, err := svc.Upsert(context.Background(), targetDate, &models.UpsertBusinessDayRequest{
		OpenTime:  "09:00",
		CloseTime: "18:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.OpenTime)

	// Конец раньше начала
	_, err = svc.Upsert(context.Background(), targetDate, &models.UpsertBusinessDayRequest{
		OpenTime:  "18:00",
		CloseTime: "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Некорректный формат времени
	_, err = svc.Upsert(context.Background(), targetDate, &models.UpsertBusinessDayRequest{
		OpenTime:  "nine",
		CloseTime: "18:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// В выходной часы не проверяются
	resp, err = svc.Upsert(context.Background(), targetDate, &models.UpsertBusinessDayRequest{
		IsHoliday: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsHoliday)
}

func TestListMonth(t *testing.T) {
	repo := newFakeCalendarRepo(
		&domain.BusinessDay{Date: date(2024, time.March, 15), OpenTime: "07:30", CloseTime: "19:30"},
		&domain.BusinessDay{Date: date(2024, time.March, 20), IsHoliday: true, OpenTime: "07:30", CloseTime: "19:30"},
		&domain.BusinessDay{Date: date(2024, time.April, 1), OpenTime: "07:30", CloseTime: "19:30"},
	)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.ListMonth(context.Background(), 2024, time.March)
	require.NoError(t, err)
	assert.Len(t, resp.Days, 2)

	_, err = svc.ListMonth(context.Background(), 1990, time.March)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
