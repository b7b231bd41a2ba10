package lock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

// Requires a running Redis, e.g. REDIS_ADDR=localhost:6379.
func TestRedis_LockAndRelease(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	l := NewRedis(client, time.Second, slog.Default())
	defer l.Close()

	ctx := context.Background()
	unlock, err := l.Lock(ctx, "test-table")
	require.NoError(t, err)

	busyCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = l.Lock(busyCtx, "test-table")
	assert.ErrorIs(t, err, ErrNotAcquired)

	unlock()

	unlock, err = l.Lock(ctx, "test-table")
	require.NoError(t, err)
	unlock()
}
