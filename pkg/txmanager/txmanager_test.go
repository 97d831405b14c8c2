package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuchan/DH-ReservationService/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.TxExecutor
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Commit() error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback() error {
	tx.rolledBack = true
	return nil
}

type fakeBeginner struct {
	beginErr error
	txs      []*fakeTx
}

func (b *fakeBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].committed)
	assert.False(t, beginner.txs[0].rolledBack)
}

func TestDoSerializable_BeginError(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{beginErr: errors.New("no connection")})

	err := m.DoSerializable(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrTransaction)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 2 {
			return fmt.Errorf("query: %w", serializationFailure())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return serializationFailure()
	})

	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, maxRetries, attempts)
}

func TestDoSerializable_DoesNotRetryBusinessErrors(t *testing.T) {
	beginner := &fakeBeginner{}
	m := NewTransactionManager(beginner)

	wantErr := errors.New("menu conflict")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		attempts++
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, attempts)
	require.Len(t, beginner.txs, 1)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.False(t, beginner.txs[0].committed)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pq.Error{Code: "40001"}))
	assert.True(t, IsRetryable(&pq.Error{Code: "40P01"}))
	assert.True(t, IsRetryable(&pq.Error{Code: "08006"}))
	assert.True(t, IsRetryable(sql.ErrConnDone))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", &pq.Error{Code: "40001"})))

	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(errors.New("plain error")))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
}
