package roomlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HotelBookingService/pkg/logger"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := NewRedis(client, time.Second, logger.NewNop(), WithRetryInterval(5*time.Millisecond))
	return mr, locker
}

func TestRedis_AcquireAndRelease(t *testing.T) {
	mr, locker := setupRedis(t)
	roomID := uuid.New()

	release, err := locker.Acquire(context.Background(), roomID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(defaultKeyPrefix+roomID.String()))

	release()
	assert.False(t, mr.Exists(defaultKeyPrefix+roomID.String()))
}

func TestRedis_SecondAcquireWaitsUntilTimeout(t *testing.T) {
	_, locker := setupRedis(t)
	roomID := uuid.New()

	release, err := locker.Acquire(context.Background(), roomID)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = locker.Acquire(ctx, roomID)
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestRedis_AcquireAfterRelease(t *testing.T) {
	_, locker := setupRedis(t)
	roomID := uuid.New()

	release, err := locker.Acquire(context.Background(), roomID)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		r, err := locker.Acquire(ctx, roomID)
		if err == nil {
			r()
		}
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	release()

	assert.NoError(t, <-done)
}

func TestRedis_ReleaseDoesNotDeleteForeignLock(t *testing.T) {
	mr, locker := setupRedis(t)
	roomID := uuid.New()
	key := defaultKeyPrefix + roomID.String()

	release, err := locker.Acquire(context.Background(), roomID)
	require.NoError(t, err)

	// блокировка истекла, ее забрал другой инстанс
	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(key))
	require.NoError(t, mr.Set(key, "other-owner"))

	release()

	value, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "other-owner", value)
}

func TestRedis_BackendFailure(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	locker := NewRedis(client, time.Second, logger.NewNop())

	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = locker.Acquire(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrLockBackend)
}
