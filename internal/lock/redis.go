package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRetryInterval = 25 * time.Millisecond

// releaseScript удаляет ключ только если он всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker блокировка корта между несколькими экземплярами сервиса.
// TTL страхует от зависших блокировок; окончательную защиту от двойного
// бронирования даёт exclusion constraint в БД.
type RedisLocker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration
	logger        *zap.Logger
}

// NewRedisLocker создаёт locker поверх redis клиента
func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
		logger:        logger,
	}
}

// Lock ждёт освобождения корта, пока не истечёт ctx
func (l *RedisLocker) Lock(ctx context.Context, courtID int64) (func(), error) {
	key := courtLockKey(courtID)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire court lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}

	return func() {
		// освобождаем даже если контекст запроса уже отменён
		err := releaseScript.Run(context.Background(), l.client, []string{key}, token).Err()
		if err != nil {
			l.logger.Warn("Failed to release court lock",
				zap.Int64("court_id", courtID),
				zap.Error(err),
			)
		}
	}, nil
}

func courtLockKey(courtID int64) string {
	return fmt.Sprintf("lock:court:%d", courtID)
}
