package roomlock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix     = "roomlock:"
	defaultRetryInterval = 25 * time.Millisecond
	releaseTimeout       = 2 * time.Second
)

// удаляем ключ только если он все еще принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis распределенная блокировка номера: SET NX PX с уникальным токеном владельца.
// TTL ограничивает время жизни блокировки, если процесс упал, не освободив ее.
type Redis struct {
	client        redis.Cmdable
	ttl           time.Duration
	retryInterval time.Duration
	keyPrefix     string
	logger        Logger
}

// RedisOption настраивает Redis блокировку
type RedisOption func(*Redis)

// WithRetryInterval задает паузу между попытками захвата
func WithRetryInterval(d time.Duration) RedisOption {
	return func(r *Redis) {
		r.retryInterval = d
	}
}

// NewRedis создает распределенную блокировку поверх клиента go-redis
func NewRedis(client redis.Cmdable, ttl time.Duration, logger Logger, opts ...RedisOption) *Redis {
	r := &Redis{
		client:        client,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
		keyPrefix:     defaultKeyPrefix,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire пытается выставить ключ номера, пока не получится или не истечет ctx
func (r *Redis) Acquire(ctx context.Context, roomID uuid.UUID) (func(), error) {
	key := r.keyPrefix + roomID.String()
	token := uuid.NewString()

	ticker := time.NewTicker(r.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: room %s: %w", ErrLockTimeout, roomID, ctx.Err())
			}
			return nil, fmt.Errorf("%w: SETNX %s: %w", ErrLockBackend, key, err)
		}
		if ok {
			return r.releaseFunc(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: room %s: %w", ErrLockTimeout, roomID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (r *Redis) releaseFunc(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// контекст запроса к этому моменту может быть уже отменен
			ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()

			deleted, err := releaseScript.Run(ctx, r.client, []string{key}, token).Int()
			if err != nil {
				r.logger.Error("roomlock: failed to release %s: %v", key, err)
				return
			}
			if deleted == 0 {
				r.logger.Warn("roomlock: lock %s expired before release", key)
			}
		})
	}
}
