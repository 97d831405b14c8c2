// Package txmanager управляет транзакциями поверх *dbmetrics.DB.
// Транзакция пробрасывается в репозитории через context
// (dbmetrics.WithTx / dbmetrics.GetExecutor).
//
// Сериализуемые транзакции ретраятся ограниченное число раз при
// serialization_failure / deadlock_detected: для конкурентных операций над
// одной датой это ожидаемый исход, а не ошибка.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/shuchan/DH-ReservationService/pkg/dbmetrics"
)

const (
	maxRetries   = 3
	retryBackoff = 50 * time.Millisecond
)

var (
	// ErrTransaction возвращается при ошибке начала/завершения транзакции
	ErrTransaction = errors.New("txmanager: transaction error")

	// ErrRetriesExhausted возвращается, когда сериализуемая транзакция
	// не смогла закоммититься за maxRetries попыток
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner интерфейс для начала транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager исполняет функции внутри транзакций
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции с ретраями.
// Используется для read-check-write последовательностей, где два
// конкурентных вызова не должны оба пройти проверку.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrTransaction, ctx.Err())
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}

		lastErr = m.run(ctx, opts, fn)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
	}

	return fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	txCtx := dbmetrics.WithTx(ctx, tx)

	if err := fn(txCtx); err != nil {
		// Ошибка fn важнее ошибки отката
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrTransaction, err)
	}

	return nil
}

// IsRetryable сообщает, имеет ли смысл повторить транзакцию:
// serialization_failure (40001), deadlock_detected (40P01) и обрывы
// соединения считаются временными.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01":
			return true
		}
		// Класс 08 - ошибки соединения
		if pqErr.Code.Class() == "08" {
			return true
		}
	}

	return errors.Is(err, sql.ErrConnDone)
}
