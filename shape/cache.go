package shape

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/fretwork/fretboard"
	"github.com/katalvlaran/fretwork/score"
)

// Cache memoizes successful enumerations across arrangement runs.
//
// Entries are grouped by fretboard fingerprint, then by pitch set. Cached
// slices are shared between callers and must be treated as read-only.
// Failures are not cached; the error carries a per-call event index.
//
// Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]map[string][]Assignment

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]map[string][]Assignment)}
}

// Enumerate returns the cached shapes for ev on fb, enumerating on a miss.
func (c *Cache) Enumerate(fb *fretboard.Fretboard, ev score.Event) ([]Assignment, error) {
	fp := fb.Fingerprint()
	pk := pitchKey(ev.Pitches)

	c.mu.RLock()
	shapes, ok := c.entries[fp][pk]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)

		return shapes, nil
	}

	c.misses.Add(1)
	shapes, err := Enumerate(fb, ev)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	byPitch := c.entries[fp]
	if byPitch == nil {
		byPitch = make(map[string][]Assignment)
		c.entries[fp] = byPitch
	}
	// A concurrent miss may have filled the slot; both results are identical.
	byPitch[pk] = shapes
	c.mu.Unlock()

	return shapes, nil
}

// Invalidate drops every entry built for the given fretboard fingerprint.
func (c *Cache) Invalidate(fingerprint string) {
	c.mu.Lock()
	delete(c.entries, fingerprint)
	c.mu.Unlock()
}

// Purge empties the cache and resets its counters.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]map[string][]Assignment)
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Len returns the number of cached pitch sets over all fingerprints.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, byPitch := range c.entries {
		n += len(byPitch)
	}

	return n
}

// Stats returns the hit and miss counts since creation or the last Purge.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// pitchKey encodes a sorted pitch set: "40,45".
func pitchKey(pitches []fretboard.Pitch) string {
	var sb strings.Builder
	for i, p := range pitches {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(p)))
	}

	return sb.String()
}
