package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	reservationRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/reservation"
	"github.com/shuchan/DH-ReservationService/internal/service/reservations/models"
	"github.com/shuchan/DH-ReservationService/pkg/ptr"
)

type fakeReservationRepo struct {
	details []*domain.ReservationDetail
}

func (r *fakeReservationRepo) GetDetailByID(_ context.Context, id int64) (*domain.ReservationDetail, error) {
	for _, d := range r.details {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (r *fakeReservationRepo) ListByUser(_ context.Context, userID int64) ([]*domain.ReservationDetail, error) {
	var result []*domain.ReservationDetail
	for _, d := range r.details {
		if d.UserID == userID {
			result = append(result, d)
		}
	}
	return result, nil
}

func (r *fakeReservationRepo) ListByDate(_ context.Context, filter domain.DateReservationsFilter) ([]*domain.ReservationDetail, error) {
	var result []*domain.ReservationDetail
	for _, d := range r.details {
		if !d.ProvideDate.Equal(filter.ProvideDate) {
			continue
		}
		if filter.UserID != nil && d.UserID != *filter.UserID {
			continue
		}
		result = append(result, d)
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

func testDetails() []*domain.ReservationDetail {
	provideDate := date(2024, time.March, 15)
	return []*domain.ReservationDetail{
		{ID: 1, MenuID: 10, UserID: 100, TimeSlot: "12:30", MenuName: "Menu A", ProvideDate: provideDate},
		{ID: 2, MenuID: 10, UserID: 101, TimeSlot: "13:00", MenuName: "Menu A", ProvideDate: provideDate},
		{ID: 3, MenuID: 11, UserID: 100, TimeSlot: "12:00", MenuName: "Menu B", ProvideDate: date(2024, time.March, 16)},
	}
}

func TestGetByID(t *testing.T) {
	svc := NewService(&fakeReservationRepo{details: testDetails()}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1, 100)
	require.NoError(t, err)
	assert.Equal(t, "Menu A", resp.MenuName)
	assert.Equal(t, "2024-03-15", resp.ProvideDate)

	// Чужое бронирование недоступно
	_, err = svc.GetByID(context.Background(), 1, 101)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 99, 100)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservations(t *testing.T) {
	svc := NewService(&fakeReservationRepo{details: testDetails()}, nopLogger{})

	resp, err := svc.GetUserReservations(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	resp, err = svc.GetUserReservations(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, resp.Reservations)
}

func TestGetDateReservations(t *testing.T) {
	svc := NewService(&fakeReservationRepo{details: testDetails()}, nopLogger{})
	provideDate := date(2024, time.March, 15)

	resp, err := svc.GetDateReservations(context.Background(), &models.GetDateReservationsRequest{Date: provideDate})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	// Фильтр по пользователю
	resp, err = svc.GetDateReservations(context.Background(), &models.GetDateReservationsRequest{
		Date:   provideDate,
		UserID: ptr.Ptr(int64(101)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(101), resp.Reservations[0].UserID)

	_, err = svc.GetDateReservations(context.Background(), &models.GetDateReservationsRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
