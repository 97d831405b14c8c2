package menus

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuchan/DH-ReservationService/internal/domain"
	menuRepo "github.com/shuchan/DH-ReservationService/internal/infra/storage/menu"
	"github.com/shuchan/DH-ReservationService/internal/service/menus/models"
)

type fakeMenuRepo struct {
	menus  map[int64]*domain.Menu
	nextID int64
}

func newFakeMenuRepo(menus ...*domain.Menu) *fakeMenuRepo {
	r := &fakeMenuRepo{menus: make(map[int64]*domain.Menu), nextID: 1}
	for _, m := range menus {
		r.menus[m.ID] = m
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
	}
	return r
}

func (r *fakeMenuRepo) Create(_ context.Context, menu *domain.Menu) (*domain.Menu, error) {
	for _, m := range r.menus {
		if m.MenuNo == menu.MenuNo {
			return nil, menuRepo.ErrDuplicateMenuNo
		}
	}
	menu.ID = r.nextID
	r.nextID++
	menu.CreatedAt = time.Now()
	menu.UpdatedAt = menu.CreatedAt
	copied := *menu
	r.menus[menu.ID] = &copied
	return menu, nil
}

func (r *fakeMenuRepo) GetByID(_ context.Context, id int64) (*domain.Menu, error) {
	m, ok := r.menus[id]
	if !ok {
		return nil, menuRepo.ErrMenuNotFound
	}
	return m, nil
}

func (r *fakeMenuRepo) GetByProvideDate(_ context.Context, date time.Time) ([]*domain.Menu, error) {
	var result []*domain.Menu
	for _, m := range r.menus {
		if m.ProvideDate.Equal(date) {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeMenuRepo) CountByProvideDate(_ context.Context, date time.Time) (int, error) {
	count := 0
	for _, m := range r.menus {
		if m.ProvideDate.Equal(date) {
			count++
		}
	}
	return count, nil
}

func (r *fakeMenuRepo) Update(_ context.Context, id int64, name string) (*domain.Menu, error) {
	m, ok := r.menus[id]
	if !ok {
		return nil, menuRepo.ErrMenuNotFound
	}
	m.Name = name
	m.UpdatedAt = time.Now()
	return m, nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.menus[id]; !ok {
		return menuRepo.ErrMenuNotFound
	}
	delete(r.menus, id)
	return nil
}

type fakeReservationRepo struct {
	countByMenu map[int64]int
}

func (r *fakeReservationRepo) CountByMenuID(_ context.Context, menuID int64) (int, error) {
	return r.countByMenu[menuID], nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(menus *fakeMenuRepo, reservations *fakeReservationRepo) *Service {
	if reservations == nil {
		reservations = &fakeReservationRepo{}
	}
	return NewService(menus, reservations, fakeTxManager{}, nopLogger{})
}

func TestCreate_GeneratesSequentialMenuNo(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	svc := newTestService(newFakeMenuRepo(), nil)

	first, err := svc.Create(context.Background(), &models.CreateMenuRequest{
		Name:        "Menu A",
		ProvideDate: provideDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "202403150001", first.MenuNo)

	second, err := svc.Create(context.Background(), &models.CreateMenuRequest{
		Name:        "Menu B",
		ProvideDate: provideDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "202403150002", second.MenuNo)

	// Номера других дат начинаются со своего счетчика
	other, err := svc.Create(context.Background(), &models.CreateMenuRequest{
		Name:        "Menu C",
		ProvideDate: date(2024, time.March, 16),
	})
	require.NoError(t, err)
	assert.Equal(t, "202403160001", other.MenuNo)
}

func TestCreate_TrimsNameAndValidates(t *testing.T) {
	svc := newTestService(newFakeMenuRepo(), nil)

	resp, err := svc.Create(context.Background(), &models.CreateMenuRequest{
		Name:        "  Menu A  ",
		ProvideDate: date(2024, time.March, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, "Menu A", resp.Name)

	_, err = svc.Create(context.Background(), &models.CreateMenuRequest{
		Name:        "   ",
		ProvideDate: date(2024, time.March, 15),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateMenuRequest{
		Name:        strings.Repeat("x", domain.MaxMenuNameLength+1),
		ProvideDate: date(2024, time.March, 15),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateMenuRequest{Name: "Menu A"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMenusForDate_LockedMenuHidesOthers(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	repo := newFakeMenuRepo(
		&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate},
		&domain.Menu{ID: 2, Name: "Menu B", ProvideDate: provideDate, Locked: true},
		&domain.Menu{ID: 3, Name: "Menu C", ProvideDate: provideDate},
	)
	svc := newTestService(repo, nil)

	resp, err := svc.MenusForDate(context.Background(), provideDate)

	require.NoError(t, err)
	require.Len(t, resp.Menus, 1)
	assert.Equal(t, int64(2), resp.Menus[0].ID)
	assert.True(t, resp.Menus[0].Locked)
}

func TestMenusForDate_AllVisibleWhileUnlocked(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	repo := newFakeMenuRepo(
		&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate},
		&domain.Menu{ID: 2, Name: "Menu B", ProvideDate: provideDate},
	)
	svc := newTestService(repo, nil)

	resp, err := svc.MenusForDate(context.Background(), provideDate)

	require.NoError(t, err)
	assert.Len(t, resp.Menus, 2)
}

func TestDelete_ReservedMenuRejected(t *testing.T) {
	provideDate := date(2024, time.March, 15)
	repo := newFakeMenuRepo(&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: provideDate, Locked: true})
	svc := newTestService(repo, &fakeReservationRepo{countByMenu: map[int64]int{1: 2}})

	err := svc.Delete(context.Background(), 1)

	assert.ErrorIs(t, err, ErrMenuReserved)
	assert.Contains(t, repo.menus, int64(1))
}

func TestDelete_UnreservedMenu(t *testing.T) {
	repo := newFakeMenuRepo(&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: date(2024, time.March, 15)})
	svc := newTestService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.NotContains(t, repo.menus, int64(1))

	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrMenuNotFound)
}

func TestGetByID(t *testing.T) {
	repo := newFakeMenuRepo(&domain.Menu{ID: 1, MenuNo: "202403150001", Name: "Menu A", ProvideDate: date(2024, time.March, 15)})
	svc := newTestService(repo, nil)

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "202403150001", resp.MenuNo)
	assert.Equal(t, "2024-03-15", resp.ProvideDate)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestUpdate(t *testing.T) {
	repo := newFakeMenuRepo(&domain.Menu{ID: 1, Name: "Menu A", ProvideDate: date(2024, time.March, 15)})
	svc := newTestService(repo, nil)

	resp, err := svc.Update(context.Background(), 1, &models.UpdateMenuRequest{Name: "Menu A v2"})
	require.NoError(t, err)
	assert.Equal(t, "Menu A v2", resp.Name)

	_, err = svc.Update(context.Background(), 1, &models.UpdateMenuRequest{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), 99, &models.UpdateMenuRequest{Name: "Menu X"})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}
