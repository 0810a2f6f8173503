package lock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/costeo-fifo/internal/domain"
	"github.com/jhoicas/costeo-fifo/pkg/config"
)

func TestLocalLocker_ExclusivoHastaLiberar(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	first, err := l.Obtain(ctx, "order:o1")
	require.NoError(t, err)

	_, err = l.Obtain(ctx, "order:o1")
	assert.ErrorIs(t, err, domain.ErrConcurrentRequest)

	other, err := l.Obtain(ctx, "order:o2")
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	require.NoError(t, first.Release(ctx))
	require.NoError(t, first.Release(ctx))

	again, err := l.Obtain(ctx, "order:o1")
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./internal/infrastructure/lock/
func TestRedisLocker_Exclusivo(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	ctx := context.Background()
	rdb, err := NewRedisClient(ctx, config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	defer rdb.Close()

	l := NewRedisLocker(rdb, 5*time.Second)
	key := "test:" + uuid.New().String()

	first, err := l.Obtain(ctx, key)
	require.NoError(t, err)

	_, err = l.Obtain(ctx, key)
	assert.ErrorIs(t, err, domain.ErrConcurrentRequest)

	require.NoError(t, first.Release(ctx))
	again, err := l.Obtain(ctx, key)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}
