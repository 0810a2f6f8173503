package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/costeo-fifo/internal/domain"
)

func TestWrapInsert_Duplicado(t *testing.T) {
	dup := fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation})
	assert.ErrorIs(t, wrapInsert("product", dup), domain.ErrDuplicate)

	other := errors.New("conexión cerrada")
	err := wrapInsert("product", other)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)

	assert.NoError(t, wrapInsert("product", nil))
}

func TestIsCheckViolation_SoloCheck(t *testing.T) {
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: pgerrcode.CheckViolation}))
	assert.False(t, isCheckViolation(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, isCheckViolation(errors.New("x")))
}

func TestIsRetryable_DeadlockYSerializacion(t *testing.T) {
	assert.True(t, isRetryable(fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgerrcode.DeadlockDetected})))
	assert.True(t, isRetryable(&pgconn.PgError{Code: pgerrcode.SerializationFailure}))
	assert.False(t, isRetryable(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, isRetryable(domain.ErrInsufficientStock))
}
