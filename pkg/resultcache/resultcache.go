// Package resultcache caches rendered search results keyed by working
// directory and query. The hook binary runs once per tool call and wires
// Nop; a long-lived embedder can wire Memory or SQLite instead and use
// Watch to drop entries when the repository cache file changes on disk.
package resultcache

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultTTL is how long a cached result stays valid. Search results go
// stale quickly while code is being edited.
const DefaultTTL = 5 * time.Minute

// Cache stores rendered search results. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the cached result for cwd+query, if present and fresh.
	Get(cwd, query string) (string, bool)
	// Set stores a result for cwd+query.
	Set(cwd, query, result string)
}

// Key hashes a cwd+query pair into a cache key. The NUL separator keeps
// ("/a", "b c") and ("/a b", "c") distinct.
func Key(cwd, query string) uint64 {
	return xxhash.Sum64String(cwd + "\x00" + query)
}

// Nop is the no-op cache: never hits, never stores.
type Nop struct{}

// Get always misses.
func (Nop) Get(string, string) (string, bool) { return "", false }

// Set discards the result.
func (Nop) Set(string, string, string) {}

type memoryEntry struct {
	result   string
	cachedAt time.Time
}

// Memory is an in-process TTL cache.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[uint64]memoryEntry
}

// NewMemory returns a Memory cache with the given TTL; zero means
// DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[uint64]memoryEntry),
	}
}

// Get returns a fresh entry for cwd+query; expired entries are removed
// on the way out.
func (m *Memory) Get(cwd, query string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Key(cwd, query)
	entry, ok := m.entries[key]
	if !ok {
		return "", false
	}
	if m.now().Sub(entry.cachedAt) > m.ttl {
		delete(m.entries, key)
		return "", false
	}
	return entry.result, true
}

// Set stores a result for cwd+query.
func (m *Memory) Set(cwd, query, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[Key(cwd, query)] = memoryEntry{result: result, cachedAt: m.now()}
}

// Invalidate drops every entry. Wired to Watch in long-lived embedders.
func (m *Memory) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[uint64]memoryEntry)
}
