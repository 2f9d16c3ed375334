package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := NewRedisClient(s.Addr(), "", 0)
	c := NewRedisCache(client)
	defer c.Close()
	ctx := context.Background()

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, c.Ping(ctx))
	})

	t.Run("SetAndGet", func(t *testing.T) {
		err := c.Set(ctx, "directory:page1", []byte(`{"items":[]}`), time.Minute)
		require.NoError(t, err)

		got, err := c.Get(ctx, "directory:page1")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"items":[]}`), got)
	})

	t.Run("MissReturnsNil", func(t *testing.T) {
		got, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Expiry", func(t *testing.T) {
		err := c.Set(ctx, "short", []byte("lived"), time.Second)
		require.NoError(t, err)

		s.FastForward(time.Second + time.Millisecond)

		got, err := c.Get(ctx, "short")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("NonPositiveTTLStoresNothing", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "zero", []byte("x"), 0))

		got, err := c.Get(ctx, "zero")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "doomed", []byte("v"), time.Minute))
		require.NoError(t, c.Delete(ctx, "doomed"))

		got, err := c.Get(ctx, "doomed")
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.NoError(t, c.Delete(ctx, "never-existed"))
	})
}

func TestRedisCache_ConnectionError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	c := NewRedisCache(client)
	defer c.Close()
	ctx := context.Background()

	assert.Error(t, c.Ping(ctx))

	_, err := c.Get(ctx, "any")
	assert.Error(t, err)

	assert.Error(t, c.Set(ctx, "any", []byte("v"), time.Minute))
	assert.Error(t, c.Delete(ctx, "any"))
}
