package store

import (
	"encoding/json"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shobhit-87labs/opentell/internal/types"
)

// LoadBuffer reads the session buffer, or returns a fresh empty one for a
// missing or corrupt file.
func (s *Store) LoadBuffer() types.SessionBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadBuffer()
}

func (s *Store) loadBuffer() types.SessionBuffer {
	data, err := os.ReadFile(s.paths.buffer())
	if err != nil {
		return types.SessionBuffer{}
	}
	var buf types.SessionBuffer
	if err := json.Unmarshal(data, &buf); err != nil {
		return types.SessionBuffer{}
	}
	return buf
}

// SaveBuffer writes buf atomically.
func (s *Store) SaveBuffer(buf types.SessionBuffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.paths.Dir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".buffer-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath) //nolint:errcheck // cleanup path
		}
	}()

	enc := json.NewEncoder(tmp)
	if err := enc.Encode(buf); err != nil {
		_ = tmp.Close() //nolint:errcheck // cleanup path
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close() //nolint:errcheck // cleanup path
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, s.paths.buffer()); err != nil {
		return err
	}
	success = true
	return nil
}

// ClearBuffer resets the session buffer to a fresh, empty state for
// sessionID, called by session-start and after session-end.
func (s *Store) ClearBuffer(sessionID string) error {
	return s.SaveBuffer(types.SessionBuffer{
		SessionID:  sessionID,
		LastStopTS: time.Now().UTC(),
	})
}

// AnalyzedCache wraps the session buffer's bounded fingerprint dedup cache
// with an LRU eviction policy (spec.md §5's 200-entry cap).
type AnalyzedCache struct {
	lru *lru.Cache[string, struct{}]
}

// NewAnalyzedCache builds a cache pre-seeded with buf's persisted
// fingerprints, oldest first, so eviction order matches insertion order.
func NewAnalyzedCache(buf types.SessionBuffer) *AnalyzedCache {
	c, _ := lru.New[string, struct{}](types.AnalyzedCacheCap)
	for _, fp := range buf.Analyzed {
		c.Add(fp, struct{}{})
	}
	return &AnalyzedCache{lru: c}
}

// Seen reports whether fingerprint was already recorded.
func (c *AnalyzedCache) Seen(fingerprint string) bool {
	return c.lru.Contains(fingerprint)
}

// Add records fingerprint as analyzed, evicting the oldest entry once the
// cap is exceeded.
func (c *AnalyzedCache) Add(fingerprint string) {
	c.lru.Add(fingerprint, struct{}{})
}

// Fingerprints returns the cache's current contents in LRU order
// (oldest-evicted-first), for persisting back into the session buffer.
func (c *AnalyzedCache) Fingerprints() []string {
	keys := c.lru.Keys()
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}
