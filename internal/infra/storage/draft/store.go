// Package draft хранит черновики бронирований в Redis.
// Черновик живет ограниченное время (TTL) и потребляется ровно один раз:
// Consume выполняет GETDEL, поэтому повторное подтверждение одного
// черновика невозможно.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shuchan/DH-ReservationService/pkg/types"
)

const keyPrefix = "reservation:draft:"

// Draft черновик бронирования, еще не записанный в PostgreSQL
type Draft struct {
	UserID    int64            `json:"user_id"`
	MenuID    int64            `json:"menu_id"`
	TimeSlot  types.TimeString `json:"time_slot"`
	CreatedAt time.Time        `json:"created_at"`
}

// Store хранилище черновиков
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище черновиков с заданным TTL
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Save сохраняет черновик и возвращает его токен
func (s *Store) Save(ctx context.Context, d *Draft) (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("%w: Save: %v", ErrMarshal, err)
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("%w: Save - set: %v", ErrStore, err)
	}

	return token, nil
}

// Get возвращает черновик, не удаляя его
func (s *Store) Get(ctx context.Context, token string) (*Draft, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrStore, err)
	}

	return unmarshalDraft(data)
}

// Consume атомарно читает и удаляет черновик.
// Второй Consume того же токена вернет ErrDraftNotFound.
func (s *Store) Consume(ctx context.Context, token string) (*Draft, error) {
	data, err := s.client.GetDel(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Consume - getdel: %v", ErrStore, err)
	}

	return unmarshalDraft(data)
}

func unmarshalDraft(data []byte) (*Draft, error) {
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrMarshal, err)
	}
	return &d, nil
}
