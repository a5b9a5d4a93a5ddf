// Package cache stores synthesized audio so repeated announcements (the
// daily greeting, fixed reminder phrasings) don't pay the synthesis cost
// twice. Entries are keyed by a digest of the text and voice, held in a
// bounded in-memory layer and optionally persisted to a zstd-compressed
// disk layer that survives restarts.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	// ErrItemTooLarge is returned when a single entry exceeds the layer's
	// whole capacity.
	ErrItemTooLarge = errors.New("cache: item larger than capacity")
)

// Stats tracks cache effectiveness.
type Stats struct {
	Hits      int64
	Misses    int64
	ItemCount int64
	Size      int64
	Capacity  int64
}

// HitRate returns the fraction of lookups served from the cache.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Key derives the cache key for a text/voice pair.
func Key(text, voice string) string {
	sum := sha256.Sum256([]byte(voice + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Memory is the in-process cache layer. Eviction is oldest-first; audio
// entries are written once and never updated, so recency tracking buys
// nothing here.
type Memory struct {
	mu       sync.RWMutex
	capacity int64
	size     int64
	items    map[string]*memoryEntry
	stats    Stats
}

type memoryEntry struct {
	value   []byte
	addedAt time.Time
}

// NewMemory creates a memory cache bounded to capacity bytes.
func NewMemory(capacity int64) *Memory {
	return &Memory{
		capacity: capacity,
		items:    make(map[string]*memoryEntry),
		stats:    Stats{Capacity: capacity},
	}
}

// Get returns the cached bytes for key, if present.
func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.items[key]
	if !ok {
		m.stats.Misses++
		return nil, false
	}
	m.stats.Hits++
	return entry.value, true
}

// Put stores value under key, evicting oldest entries to make room.
func (m *Memory) Put(key string, value []byte) error {
	size := int64(len(value))
	if size > m.capacity {
		return ErrItemTooLarge
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.items[key]; ok {
		m.size -= int64(len(existing.value))
	}
	for m.size+size > m.capacity && len(m.items) > 0 {
		m.evictOldestLocked()
	}

	m.items[key] = &memoryEntry{value: value, addedAt: time.Now()}
	m.size += size
	m.stats.Size = m.size
	m.stats.ItemCount = int64(len(m.items))
	return nil
}

// Clear drops every entry.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]*memoryEntry)
	m.size = 0
	m.stats.Size = 0
	m.stats.ItemCount = 0
}

// Stats returns a snapshot of the layer's counters.
func (m *Memory) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

func (m *Memory) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range m.items {
		if oldestKey == "" || entry.addedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.addedAt
		}
	}
	if oldestKey != "" {
		m.size -= int64(len(m.items[oldestKey].value))
		delete(m.items, oldestKey)
	}
}
