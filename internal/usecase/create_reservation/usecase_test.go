package create_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	"github.com/shuchan/DH-ReservationService/internal/infra/events"
	calendarRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/calendar"
	menuRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/menu"
)

// fakeStorage is an in-memory stand-in for the menu and reservation
// repositories sharing one state, like the real tables do.
type fakeStorage struct {
	mu           sync.Mutex
	menus        map[int64]*domain.Menu
	reservations []*domain.Reservation
	nextID       int64
}

func newFakeStorage(menus ...*domain.Menu) *fakeStorage {
	s := &fakeStorage{menus: make(map[int64]*domain.Menu), nextID: 1}
	for _, m := range menus {
		s.menus[m.ID] = m
	}
	return s
}

func (s *fakeStorage) GetByID(_ context.Context, id int64) (*domain.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.menus[id]
	if !ok {
		return nil, menuRepo.ErrMenuNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *fakeStorage) GetByProvideDate(_ context.Context, date time.Time) ([]*domain.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*domain.Menu
	for _, m := range s.menus {
		if m.ProvideDate.Equal(date) {
			copied := *m
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *fakeStorage) SetLocked(_ context.Context, id int64, locked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.menus[id]
	if !ok {
		return menuRepo.ErrMenuNotFound
	}
	m.Locked = locked
	return nil
}

func (s *fakeStorage) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextID
	s.nextID++
	r.CreatedAt = time.Now()
	copied := *r
	s.reservations = append(s.reservations, &copied)
	return r, nil
}

func (s *fakeStorage) ListByDate(_ context.Context, filter domain.DateReservationsFilter) ([]*domain.ReservationDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*domain.ReservationDetail
	for _, r := range s.reservations {
		menu := s.menus[r.MenuID]
		if menu == nil || !menu.ProvideDate.Equal(filter.ProvideDate) {
			continue
		}
		result = append(result, &domain.ReservationDetail{
			ID:          r.ID,
			MenuID:      r.MenuID,
			UserID:      r.UserID,
			TimeSlot:    r.TimeSlot,
			MenuName:    menu.Name,
			ProvideDate: menu.ProvideDate,
		})
	}
	return result, nil
}

type fakeCalendar struct {
	days map[string]*domain.BusinessDay
}

func (c *fakeCalendar) GetByDate(_ context.Context, date time.Time) (*domain.BusinessDay, error) {
	if c.days == nil {
		return nil, calendarRepo.ErrBusinessDayNotFound
	}
	day, ok := c.days[date.Format(domain.DateFormat)]
	if !ok {
		return nil, calendarRepo.ErrBusinessDayNotFound
	}
	return day, nil
}

// fakeTxManager serializes all transactions with one mutex, mimicking
// the effect of SERIALIZABLE isolation on conflicting transactions.
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.ReservationEvent
}

func (p *fakePublisher) Publish(_ context.Context, e events.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

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

func newTestUseCase(storage *fakeStorage, cal *fakeCalendar, now time.Time) *UseCase {
	uc := NewUseCase(storage, storage, cal, &fakePublisher{}, &fakeTxManager{}, nopLogger{}, 1)
	uc.timeProvider = &fakeTime{now: now}
	return uc
}

func TestExecute_CreatesReservationAndLocksMenu(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := newFakeStorage(
		&domain.Menu{ID: 1, MenuNo: "202403150001", Name: "Menu A", ProvideDate: provideDate},
		&domain.Menu{ID: 2, MenuNo: "202403150002", Name: "Menu B", ProvideDate: provideDate},
	)
	uc := newTestUseCase(storage, &fakeCalendar{}, date(2024, time.March, 10))

	resp, err := uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 1, TimeSlot: "12:30"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.MenuID)
	assert.Equal(t, "Menu A", resp.MenuName)
	assert.True(t, storage.menus[1].Locked, "first reservation must lock the menu")
	assert.False(t, storage.menus[2].Locked)
}

func TestExecute_MenuConflict(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := newFakeStorage(
		&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate},
		&domain.Menu{ID: 2, Name: "Menu B", ProvideDate: provideDate},
	)
	uc := newTestUseCase(storage, &fakeCalendar{}, date(2024, time.March, 10))

	_, err := uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 1, TimeSlot: "12:30"})
	require.NoError(t, err)

	// Другое меню на ту же дату - конфликт
	_, err = uc.Execute(context.Background(), &Request{UserID: 101, MenuID: 2, TimeSlot: "13:00"})
	assert.ErrorIs(t, err, ErrMenuConflict)

	// То же меню - успех
	_, err = uc.Execute(context.Background(), &Request{UserID: 101, MenuID: 1, TimeSlot: "13:00"})
	assert.NoError(t, err)
}

func TestExecute_ConflictWhenMenuLockedWithoutReservations(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := newFakeStorage(
		&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate, Locked: true},
		&domain.Menu{ID: 2, Name: "Menu B", ProvideDate: provideDate},
	)
	uc := newTestUseCase(storage, &fakeCalendar{}, date(2024, time.March, 10))

	_, err := uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 2, TimeSlot: "12:30"})
	assert.ErrorIs(t, err, ErrMenuConflict)
}

func TestExecute_MenuNotFound(t *testing.T) {
	storage := newFakeStorage()
	uc := newTestUseCase(storage, &fakeCalendar{}, date(2024, time.March, 10))

	_, err := uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 99, TimeSlot: "12:30"})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestExecute_TooSoonToReserve(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := newFakeStorage(&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate})

	// minLeadDays = 1: в день подачи бронировать уже нельзя
	uc := newTestUseCase(storage, &fakeCalendar{}, date(2024, time.March, 15))

	_, err := uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 1, TimeSlot: "12:30"})
	assert.ErrorIs(t, err, ErrTooSoonToReserve)
}

func TestExecute_SlotOutsideGrid(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := newFakeStorage(&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate})
	uc := newTestUseCase(storage, &fakeCalendar{}, date(2024, time.March, 10))

	_, err := uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 1, TimeSlot: "12:15"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_Holiday(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := newFakeStorage(&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate})
	cal := &fakeCalendar{days: map[string]*domain.BusinessDay{
		"2024-03-15": {Date: provideDate, IsHoliday: true},
	}}
	uc := newTestUseCase(storage, cal, date(2024, time.March, 10))

	_, err := uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 1, TimeSlot: "12:30"})
	assert.ErrorIs(t, err, ErrHoliday)
}

func TestExecute_SlotOutsideWorkingWindow(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := newFakeStorage(&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate})
	cal := &fakeCalendar{days: map[string]*domain.BusinessDay{
		"2024-03-15": {Date: provideDate, OpenTime: "12:00", CloseTime: "13:30"},
	}}
	uc := newTestUseCase(storage, cal, date(2024, time.March, 10))

	// Завтрак вне окна
	_, err := uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 1, TimeSlot: "07:30"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Граница окна включительна
	_, err = uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 1, TimeSlot: "13:30"})
	assert.NoError(t, err)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newFakeStorage(), &fakeCalendar{}, date(2024, time.March, 10))

	_, err := uc.Execute(context.Background(), &Request{UserID: 0, MenuID: 1, TimeSlot: "12:30"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 1, MenuID: 0, TimeSlot: "12:30"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 1, MenuID: 1, TimeSlot: "25:99"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Two users racing for different menus on the same date: exactly one
// reservation must win, the other gets a menu conflict.
func TestExecute_ConcurrentDifferentMenus(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := newFakeStorage(
		&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate},
		&domain.Menu{ID: 2, Name: "Menu B", ProvideDate: provideDate},
	)
	uc := newTestUseCase(storage, &fakeCalendar{}, date(2024, time.March, 10))

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i, menuID := range []int64{1, 2} {
		wg.Add(1)
		go func(i int, menuID int64) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				UserID:   int64(100 + i),
				MenuID:   menuID,
				TimeSlot: "12:30",
			})
		}(i, menuID)
	}
	wg.Wait()

	succeeded := 0
	conflicted := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrMenuConflict)
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	// Закреплено ровно одно меню
	lockedCount := 0
	for _, m := range storage.menus {
		if m.Locked {
			lockedCount++
		}
	}
	assert.Equal(t, 1, lockedCount)
	assert.Len(t, storage.reservations, 1)
}

// raceTxManager runs a callback before the transaction body, emulating a
// concurrent commit squeezing in between the pre-transaction menu read and
// the serializable transaction.
type raceTxManager struct {
	mu     sync.Mutex
	before func()
}

func (m *raceTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.before != nil {
		m.before()
		m.before = nil
	}
	return fn(ctx)
}

func TestExecute_RelocksMenuAfterConcurrentLastCancel(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := newFakeStorage(
		&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate, Locked: true},
	)
	storage.reservations = append(storage.reservations,
		&domain.Reservation{ID: 7, MenuID: 1, UserID: 200, TimeSlot: "12:00"})
	storage.nextID = 8

	txManager := &raceTxManager{
		before: func() {
			// Последняя отмена успела закоммититься: строка удалена,
			// меню освобождено
			storage.mu.Lock()
			storage.reservations = nil
			storage.menus[1].Locked = false
			storage.mu.Unlock()
		},
	}

	uc := NewUseCase(storage, storage, &fakeCalendar{}, &fakePublisher{}, txManager, nopLogger{}, 1)
	uc.timeProvider = &fakeTime{now: date(2024, time.March, 10)}

	resp, err := uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 1, TimeSlot: "12:30"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.MenuID)
	assert.True(t, storage.menus[1].Locked,
		"lock decision must use the in-transaction menu copy, not the stale pre-read")
	assert.Len(t, storage.reservations, 1)
}

func TestExecute_MenuDeletedBeforeTransaction(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	storage := newFakeStorage(&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate})

	txManager := &raceTxManager{
		before: func() {
			storage.mu.Lock()
			delete(storage.menus, 1)
			storage.mu.Unlock()
		},
	}

	uc := NewUseCase(storage, storage, &fakeCalendar{}, &fakePublisher{}, txManager, nopLogger{}, 1)
	uc.timeProvider = &fakeTime{now: date(2024, time.March, 10)}

	_, err := uc.Execute(context.Background(), &Request{UserID: 100, MenuID: 1, TimeSlot: "12:30"})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestValidateLeadTime(t *testing.T) {
	now := time.Date(2024, time.March, 14, 10, 0, 0, 0, time.UTC)

	// Завтра при minLeadDays=1 - можно
	assert.NoError(t, validateLeadTime(date(2024, time.March, 15), now, 1))

	// Сегодня - нельзя
	assert.ErrorIs(t, validateLeadTime(date(2024, time.March, 14), now, 1), ErrTooSoonToReserve)

	// Прошлое - нельзя
	assert.ErrorIs(t, validateLeadTime(date(2024, time.March, 10), now, 1), ErrTooSoonToReserve)

	// minLeadDays=0: сегодня можно
	assert.NoError(t, validateLeadTime(date(2024, time.March, 14), now, 0))
}
