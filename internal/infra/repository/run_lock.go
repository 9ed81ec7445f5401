package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/chriscconte/cycling-coach/internal/domain"
	"github.com/chriscconte/cycling-coach/internal/observability/tracing"
)

const runLockKeyPrefix = "orchestrator:lock:"

// releaseScript deletes the lock only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type runLock struct {
	client *redis.Client
}

func NewRunLock(client *redis.Client) domain.RunLock {
	return &runLock{
		client: client,
	}
}

func (l *runLock) Acquire(ctx context.Context, job string, ttl time.Duration) (string, bool, error) {
	key := runLockKeyPrefix + job

	ctx, span := tracing.StartRedisOperationSpan(ctx, "lock_acquire", key)
	defer span.End()

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		span.RecordError(err)
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	return token, true, nil
}

func (l *runLock) Release(ctx context.Context, job, token string) error {
	key := runLockKeyPrefix + job

	ctx, span := tracing.StartRedisOperationSpan(ctx, "lock_release", key)
	defer span.End()

	deleted, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrLockNotHeld
		}
		span.RecordError(err)
		return err
	}
	if deleted == 0 {
		return ErrLockNotHeld
	}

	return nil
}
