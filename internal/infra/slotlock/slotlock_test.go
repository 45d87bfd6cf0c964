package slotlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	locker := NewLocker(client, 30*time.Second)
	ctx := context.Background()

	t.Run("AcquireAndRelease", func(t *testing.T) {
		token, err := locker.Acquire(ctx, 1, 2, "2026-09-01", "10:00")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		// Same slot is held.
		_, err = locker.Acquire(ctx, 1, 2, "2026-09-01", "10:00")
		assert.ErrorIs(t, err, ErrSlotLocked)

		// A different slot is free.
		_, err = locker.Acquire(ctx, 1, 2, "2026-09-01", "11:00")
		require.NoError(t, err)

		require.NoError(t, locker.Release(ctx, 1, 2, "2026-09-01", "10:00", token))

		_, err = locker.Acquire(ctx, 1, 2, "2026-09-01", "10:00")
		assert.NoError(t, err)
	})

	t.Run("ReleaseWithWrongTokenKeepsLock", func(t *testing.T) {
		token, err := locker.Acquire(ctx, 5, 6, "2026-09-02", "14:00")
		require.NoError(t, err)

		require.NoError(t, locker.Release(ctx, 5, 6, "2026-09-02", "14:00", "not-the-owner"))

		_, err = locker.Acquire(ctx, 5, 6, "2026-09-02", "14:00")
		assert.ErrorIs(t, err, ErrSlotLocked)

		require.NoError(t, locker.Release(ctx, 5, 6, "2026-09-02", "14:00", token))
	})

	t.Run("LockExpires", func(t *testing.T) {
		_, err := locker.Acquire(ctx, 7, 8, "2026-09-03", "09:00")
		require.NoError(t, err)

		s.FastForward(31 * time.Second)

		_, err = locker.Acquire(ctx, 7, 8, "2026-09-03", "09:00")
		assert.NoError(t, err)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, locker.Ping(ctx))
	})
}
