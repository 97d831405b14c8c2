package cancel_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/internal/infra/events"
	reservationRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/reservation"
)

type fakeStorage struct {
	details map[int64]*domain.ReservationDetail
	menus   map[int64]*domain.Menu
}

func (s *fakeStorage) GetDetailByID(_ context.Context, id int64) (*domain.ReservationDetail, error) {
	d, ok := s.details[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return d, nil
}

func (s *fakeStorage) CountByMenuID(_ context.Context, menuID int64) (int, error) {
	count := 0
	for _, d := range s.details {
		if d.MenuID == menuID {
			count++
		}
	}
	return count, nil
}

func (s *fakeStorage) Delete(_ context.Context, id int64) error {
	if _, ok := s.details[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(s.details, id)
	return nil
}

func (s *fakeStorage) GetByProvideDate(_ context.Context, date time.Time) ([]*domain.Menu, error) {
	var result []*domain.Menu
	for _, m := range s.menus {
		if m.ProvideDate.Equal(date) {
			result = append(result, m)
		}
	}
	return result, nil
}

func (s *fakeStorage) SetLocked(_ context.Context, id int64, locked bool) error {
	s.menus[id].Locked = locked
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct{}

func (fakePublisher) Publish(context.Context, events.ReservationEvent) error { return nil }

type fakeTime struct {
	now time.Time
}

func (t *fakeTime) Now() time.Time { return t.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestUseCase(storage *fakeStorage, now time.Time) *UseCase {
	uc := NewUseCase(storage, storage, fakePublisher{}, fakeTxManager{}, nopLogger{}, 15)
	uc.timeProvider = &fakeTime{now: now}
	return uc
}

func TestExecute_LastCancelUnlocksMenu(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := &fakeStorage{
		details: map[int64]*domain.ReservationDetail{
			1: {ID: 1, MenuID: 10, UserID: 100, TimeSlot: "12:30", ProvideDate: provideDate},
		},
		menus: map[int64]*domain.Menu{
			10: {ID: 10, Name: "Menu A", ProvideDate: provideDate, Locked: true},
		},
	}
	uc := newTestUseCase(storage, time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC))

	err := uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 100})

	require.NoError(t, err)
	assert.Empty(t, storage.details)
	assert.False(t, storage.menus[10].Locked, "last cancellation must unlock the menu")
}

func TestExecute_MenuStaysLockedWhileReservationsRemain(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := &fakeStorage{
		details: map[int64]*domain.ReservationDetail{
			1: {ID: 1, MenuID: 10, UserID: 100, TimeSlot: "12:30", ProvideDate: provideDate},
			2: {ID: 2, MenuID: 10, UserID: 101, TimeSlot: "13:00", ProvideDate: provideDate},
		},
		menus: map[int64]*domain.Menu{
			10: {ID: 10, Name: "Menu A", ProvideDate: provideDate, Locked: true},
		},
	}
	uc := newTestUseCase(storage, time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC))

	err := uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 100})

	require.NoError(t, err)
	assert.Len(t, storage.details, 1)
	assert.True(t, storage.menus[10].Locked)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	storage := &fakeStorage{details: map[int64]*domain.ReservationDetail{}}
	uc := newTestUseCase(storage, time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC))

	err := uc.Execute(context.Background(), &Request{ReservationID: 99, UserID: 100})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := &fakeStorage{
		details: map[int64]*domain.ReservationDetail{
			1: {ID: 1, MenuID: 10, UserID: 100, TimeSlot: "12:30", ProvideDate: provideDate},
		},
	}
	uc := newTestUseCase(storage, time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC))

	err := uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_TooLateToCancel(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := &fakeStorage{
		details: map[int64]*domain.ReservationDetail{
			1: {ID: 1, MenuID: 10, UserID: 100, TimeSlot: "12:30", ProvideDate: provideDate},
		},
		menus: map[int64]*domain.Menu{
			10: {ID: 10, Name: "Menu A", ProvideDate: provideDate, Locked: true},
		},
	}

	// 14 марта 15:00 - дедлайн для подачи 15 марта уже наступил
	uc := newTestUseCase(storage, time.Date(2024, time.March, 14, 15, 0, 0, 0, time.UTC))

	err := uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 100})
	assert.ErrorIs(t, err, ErrTooLateToCancel)
	assert.Len(t, storage.details, 1)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeStorage{}, time.Now())

	assert.ErrorIs(t, uc.Execute(context.Background(), &Request{ReservationID: 0, UserID: 1}), ErrInvalidInput)
	assert.ErrorIs(t, uc.Execute(context.Background(), &Request{ReservationID: 1, UserID: 0}), ErrInvalidInput)
}

func TestValidateCutoff(t *testing.T) {
	provideDate := date(2024, time.March, 15)

	tests := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{
			name: "well before cutoff",
			now:  time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "minute before cutoff",
			now:  time.Date(2024, time.March, 14, 14, 59, 0, 0, time.UTC),
		},
		{
			name:    "exactly at cutoff",
			now:     time.Date(2024, time.March, 14, 15, 0, 0, 0, time.UTC),
			wantErr: true,
		},
		{
			name:    "after cutoff",
			now:     time.Date(2024, time.March, 14, 18, 0, 0, 0, time.UTC),
			wantErr: true,
		},
		{
			name:    "on the provide date itself",
			now:     time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCutoff(provideDate, tt.now, 15)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTooLateToCancel)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
