// Package events публикует доменные события сервиса бронирования.
// События информационные: доставка best-effort, бизнес-операция не
// откатывается при ошибке публикации.
package events

import (
	"context"
	"time"
)

// Типы событий
const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationCancelled = "reservation.cancelled"
)

// ReservationEvent событие изменения бронирования
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	MenuID        int64     `json:"menu_id"`
	UserID        int64     `json:"user_id"`
	ProvideDate   string    `json:"provide_date"` // YYYY-MM-DD
	TimeSlot      string    `json:"time_slot"`    // HH:MM
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher интерфейс публикации событий
type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
	Close() error
}
