//go:build integration

package store

import (
	"context"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupRedisContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := redis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start redis container")

	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	return strings.TrimPrefix(endpoint, "redis://")
}

func TestRedisStore_PutGet(t *testing.T) {
	addr := setupRedisContainer(t)

	s, err := NewRedisStore(addr, "", 0, time.Minute)
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Put(ctx, record("run-1")))

	got, ok, err := s.Get(ctx, "run-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, record("run-1").Ledger, got.Ledger)
	assert.True(t, got.CreatedAt.Equal(record("run-1").CreatedAt))

	_, ok, err = s.Get(ctx, "run-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_TTL(t *testing.T) {
	addr := setupRedisContainer(t)

	s, err := NewRedisStore(addr, "", 0, time.Second)
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, record("short")))
	time.Sleep(1500 * time.Millisecond)

	_, ok, err := s.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_CloseIdempotent(t *testing.T) {
	addr := setupRedisContainer(t)

	s, err := NewRedisStore(addr, "", 0, time.Minute)
	require.NoError(t, err)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}

func TestRedisStore_UseAfterClose(t *testing.T) {
	addr := setupRedisContainer(t)

	s, err := NewRedisStore(addr, "", 0, time.Minute)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	ctx := context.Background()
	assert.NotPanics(t, func() {
		assert.ErrorIs(t, s.Put(ctx, record("a")), goredis.ErrClosed)
		_, ok, err := s.Get(ctx, "a")
		assert.False(t, ok)
		assert.ErrorIs(t, err, goredis.ErrClosed)
		assert.ErrorIs(t, s.Ping(ctx), goredis.ErrClosed)
	})
}

func TestRedisStore_InvalidAddr(t *testing.T) {
	_, err := NewRedisStore("invalid:99999", "", 0, time.Minute)
	assert.Error(t, err)
}
