package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}
	deadlock := &pq.Error{Code: "40P01"}

	assert.True(t, IsSerializationFailure(serialization))
	assert.True(t, IsSerializationFailure(deadlock))

	assert.False(t, IsSerializationFailure(nil))
	assert.False(t, IsSerializationFailure(errors.New("connection reset")))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
}

// Конфликт сериализации должен распознаваться сквозь всю цепочку
// обёрток: репозиторий -> сервисная ошибка -> менеджер транзакций
func TestIsSerializationFailure_WrappedChain(t *testing.T) {
	errScanRow := errors.New("schedule.repository: failed to scan row")
	errInternal := errors.New("create_booking: internal error")

	driverErr := &pq.Error{Code: "40001"}
	repoErr := fmt.Errorf("%w: GetByID - scan schedule: %w", errScanRow, driverErr)
	bodyErr := fmt.Errorf("%w: failed to get schedule: %w", errInternal, repoErr)

	assert.True(t, IsSerializationFailure(bodyErr))
	assert.True(t, IsSerializationFailure(fmt.Errorf("%w: %w", ErrCommitTx, driverErr)))
}
