package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"
)

const (
	keyPrefix    = "telemim:lock:"
	retryBackoff = 25 * time.Millisecond
)

var ErrNotAcquired = errors.New("lock not acquired")

// release deletes the key only while it still holds our token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Redis serializes mutations per table across several server instances.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    *slog.Logger
}

func NewRedis(client redis.UniversalClient, ttl time.Duration, log *slog.Logger) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
		log:    log.With("component", "redis_lock"),
	}
}

// Lock polls SET NX until the key is acquired or ctx is done.
func (r *Redis) Lock(ctx context.Context, table string) (func(), error) {
	key := keyPrefix + table
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
		case <-time.After(retryBackoff):
		}
	}

	return func() {
		// release must not depend on a request context that may be cancelled
		if err := release.Run(context.Background(), r.client, []string{key}, token).Err(); err != nil {
			r.log.Error("failed to release lock", "key", key, "error", err)
		}
	}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
