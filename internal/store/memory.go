package store

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	record    Record
	expiresAt time.Time
}

// MemoryStore is an in-process TTL store. Results are lost on restart and are
// not shared between API instances; use RedisStore for that.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]entry
	ttl     time.Duration
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore starts a store whose entries expire after ttl
// (0 uses one hour). Expired entries are swept every sweep interval.
func NewMemoryStore(ttl, sweep time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if sweep <= 0 {
		sweep = 5 * time.Minute
	}
	m := &MemoryStore{
		records: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go m.cleanup(sweep)
	return m
}

func (m *MemoryStore) Put(_ context.Context, r Record) error {
	if r.ID == "" {
		return ErrEmptyID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.ID] = entry{record: r, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Record, bool, error) {
	if id == "" {
		return Record{}, false, ErrEmptyID
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.records[id]
	if !ok || m.now().After(e.expiresAt) {
		return Record{}, false, nil
	}
	return e.record, true, nil
}

// Len counts stored entries, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Close stops the sweeper. Safe to call more than once.
func (m *MemoryStore) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

func (m *MemoryStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *MemoryStore) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, e := range m.records {
		if now.After(e.expiresAt) {
			delete(m.records, id)
		}
	}
}
