package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"genomic-storage-cost/internal/projection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string) Record {
	return Record{
		ID:        id,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Ledger:    []projection.StepRow{{Index: 0, StoredGB: 100, TotalCost: 2.3, CumCost: 2.3}},
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	m := NewMemoryStore(time.Minute, time.Hour)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, record("a")))
	got, ok, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, record("a"), got)

	_, ok, err = m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_EmptyID(t *testing.T) {
	m := NewMemoryStore(0, 0)
	defer m.Close()
	ctx := context.Background()

	assert.ErrorIs(t, m.Put(ctx, Record{}), ErrEmptyID)
	_, _, err := m.Get(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestMemoryStore_Expiry(t *testing.T) {
	m := NewMemoryStore(time.Minute, time.Hour)
	defer m.Close()
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Put(ctx, record("a")))
	now = now.Add(59 * time.Second)
	_, ok, _ := m.Get(ctx, "a")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = m.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	m.sweep()
	assert.Equal(t, 0, m.Len())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	m := NewMemoryStore(time.Minute, time.Millisecond)
	defer m.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i))
			assert.NoError(t, m.Put(ctx, record(id)))
			_, ok, err := m.Get(ctx, id)
			assert.NoError(t, err)
			assert.True(t, ok)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, m.Len())
}

func TestMemoryStore_CloseIdempotent(t *testing.T) {
	m := NewMemoryStore(time.Minute, time.Minute)
	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
}

func TestRedisStore_Validation(t *testing.T) {
	_, err := NewRedisStore("", "", 0, time.Minute)
	assert.EqualError(t, err, "redis address cannot be empty")

	_, err = NewRedisStore("localhost:6379", "", -1, time.Minute)
	assert.EqualError(t, err, "redis database number must be >= 0")
}
