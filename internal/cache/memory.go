package cache

import (
	"sync"
	"time"
)

// memoryTier is the first cache tier. Cleared on process restart.
type memoryTier struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func newMemoryTier() *memoryTier {
	return &memoryTier{
		entries: make(map[string]Entry),
	}
}

// get returns a fresh value. Expired entries are misses but stay in
// place so getAny can still serve them as a stale fallback.
func (m *memoryTier) get(key string, now time.Time) ([]byte, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || entry.Expired(now) {
		return nil, false
	}
	return entry.Value, true
}

// getAny returns the value regardless of expiry.
func (m *memoryTier) getAny(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	return entry.Value, true
}

func (m *memoryTier) put(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Key] = e
}

func (m *memoryTier) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *memoryTier) clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Entry)
}
