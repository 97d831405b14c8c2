package domain

import (
	"fmt"
	"time"
)

// Menu represents a dining menu offered on a specific provide date
type Menu struct {
	ID          int64
	MenuNo      string // Номер вида yyyymmdd0001, уникален в рамках даты
	Name        string
	ProvideDate time.Time
	Locked      bool // true, когда меню закреплено за датой хотя бы одним бронированием
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsReservable returns true if a reservation may reference this menu
// given the other menus offered on the same date.
// When some menu on the date is locked, only that menu accepts reservations.
func (m *Menu) IsReservable(lockedOnDate *Menu) bool {
	if lockedOnDate == nil {
		return true
	}
	return m.ID == lockedOnDate.ID
}

// BuildMenuNo формирует номер меню для даты: yyyymmdd + порядковый номер
func BuildMenuNo(provideDate time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", provideDate.Format("20060102"), seq)
}

// LockedMenu returns the locked menu among the given ones, or nil.
// По инварианту на одну дату закреплено не более одного меню.
func LockedMenu(menus []*Menu) *Menu {
	for _, m := range menus {
		if m.Locked {
			return m
		}
	}
	return nil
}
