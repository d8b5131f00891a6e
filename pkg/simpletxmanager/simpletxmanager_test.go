package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Заглушка драйвера: транзакции всегда успешно начинаются и фиксируются,
// запросов тесты не выполняют
type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) { return &fakeConn{}, nil }

type fakeConn struct{}

func (*fakeConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not supported") }
func (*fakeConn) Close() error                        { return nil }
func (*fakeConn) Begin() (driver.Tx, error)           { return fakeTx{}, nil }

func (*fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return fakeTx{}, nil
}

type fakeTx struct{}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func init() {
	sql.Register("simpletxmanager-fake", fakeDriver{})
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("simpletxmanager-fake", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// serializationFailure воспроизводит цепочку обёрток, с которой ошибка
// драйвера доходит от репозитория до менеджера транзакций
func serializationFailure() error {
	errScanRow := errors.New("schedule.repository: failed to scan row")
	errInternal := errors.New("create_booking: internal error")
	repoErr := fmt.Errorf("%w: GetByID - scan schedule: %w", errScanRow, &pq.Error{Code: "40001"})
	return fmt.Errorf("%w: failed to get schedule: %w", errInternal, repoErr)
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	m := NewTransactionManager(openDB(t))

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return serializationFailure()
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	m := NewTransactionManager(openDB(t))

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return serializationFailure()
	})

	require.Error(t, err)
	assert.Equal(t, maxSerializableRetries, attempts)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestDoSerializable_NoRetryOnOrdinaryError(t *testing.T) {
	m := NewTransactionManager(openDB(t))

	boom := errors.New("boom")
	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}
