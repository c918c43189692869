package core

// registry.go holds completed archives in process memory for later download.
// Entries are keyed by an opaque collision-resistant id and evicted after a
// configurable TTL; retrieval is idempotent and never invalidates an entry.

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DownloadRegistry stores generated archive bytes keyed by opaque id.
// It is shared, long-lived process state; all access is mutex-guarded.
type DownloadRegistry struct {
	mu       sync.RWMutex
	archives map[string]archiveEntry
	ttl      time.Duration
}

type archiveEntry struct {
	data     []byte
	storedAt time.Time
}

// NewDownloadRegistry creates a registry whose entries expire after ttl.
// A non-positive ttl disables expiry (entries live for the process lifetime).
func NewDownloadRegistry(ttl time.Duration) *DownloadRegistry {
	return &DownloadRegistry{
		archives: make(map[string]archiveEntry),
		ttl:      ttl,
	}
}

// Store saves archive bytes and returns a freshly generated id.
func (r *DownloadRegistry) Store(data []byte) string {
	id := uuid.New().String()

	r.mu.Lock()
	r.archives[id] = archiveEntry{data: data, storedAt: time.Now()}
	r.mu.Unlock()

	return id
}

// Retrieve returns the archive bytes for id. The second return value is
// false when the id was never stored or has expired.
func (r *DownloadRegistry) Retrieve(id string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.archives[id]
	if !ok {
		return nil, false
	}
	if r.expired(entry, time.Now()) {
		return nil, false
	}
	return entry.data, true
}

// Len returns the number of stored archives, including not-yet-swept
// expired ones.
func (r *DownloadRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.archives)
}

// StartSweeper evicts expired entries every interval until ctx is cancelled.
// Run it in its own goroutine.
func (r *DownloadRegistry) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(time.Now())
		}
	}
}

// Sweep removes entries that have expired as of now and returns how many
// were evicted.
func (r *DownloadRegistry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, entry := range r.archives {
		if r.expired(entry, now) {
			delete(r.archives, id)
			evicted++
		}
	}
	return evicted
}

func (r *DownloadRegistry) expired(entry archiveEntry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(entry.storedAt) > r.ttl
}
