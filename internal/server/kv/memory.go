package kv

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophkms/internal/common"
)

type memEntry struct {
	value     []byte
	expiresAt time.Time // zero: no expiry
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore keeps everything in process memory. It is meant for
// development and tests; data is lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	sets    map[string]map[string]struct{}
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memEntry),
		sets:    make(map[string]map[string]struct{}),
		now:     time.Now,
	}
}

// lookup must be called with mu held.
func (m *MemoryStore) lookup(key string) (memEntry, bool) {
	e, ok := m.entries[key]
	if !ok {
		return memEntry{}, false
	}
	if e.expired(m.now()) {
		delete(m.entries, key)
		return memEntry{}, false
	}
	return e, true
}

func (m *MemoryStore) newEntry(value []byte, ttl time.Duration) memEntry {
	e := memEntry{value: slices.Clone(value)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	return e
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(key)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return slices.Clone(e.value), nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = m.newEntry(value, ttl)
	return nil
}

func (m *MemoryStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lookup(key); ok {
		return false, nil
	}
	m.entries[key] = m.newEntry(value, ttl)
	return true, nil
}

func (m *MemoryStore) GetDel(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(key)
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(m.entries, key)
	return e.value, nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	delete(m.sets, key)
	return nil
}

func (m *MemoryStore) SAdd(ctx context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	set[member] = struct{}{}
	return nil
}

func (m *MemoryStore) SIsMember(ctx context.Context, key, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.sets[key][member]
	return ok, nil
}

func (m *MemoryStore) SMembers(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	members := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		members = append(members, member)
	}
	slices.Sort(members)
	return members, nil
}

func (m *MemoryStore) PurgeExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var n int64
	for key, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, key)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
