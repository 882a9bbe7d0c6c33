// Package store implements opentell's persistent learning set: the single
// JSON document of Learning records, the write-ahead log of ambiguous
// pairs awaiting classification, and the ephemeral per-session buffer.
//
// The store is a process-wide singleton per user directory (spec.md §9):
// every hook invocation opens a fresh Store, mutates it, and saves —
// nothing is cached across a hook invocation boundary. Because classifier
// workers may still be writing after the hook that spawned them exits, the
// store re-reads its document before every mutating call rather than
// trusting an in-memory copy.
package store

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shobhit-87labs/opentell/internal/types"
)

// Store is the persistent learning set for one user directory.
type Store struct {
	paths Paths
	mu    sync.Mutex
}

// New returns a Store rooted at paths.
func New(paths Paths) *Store {
	return &Store{paths: paths}
}

// Open resolves the default state directory and returns a ready Store.
func Open() (*Store, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return New(paths), nil
}

// load reads the learnings document, treating a missing file or a parse
// failure identically: start from an empty document. Per spec.md §4.1,
// data loss is preferred over crashing at a hook boundary.
func (s *Store) load() types.Document {
	data, err := os.ReadFile(s.paths.learnings())
	if err != nil {
		return types.Document{}
	}
	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logf("learnings.json parse failure, starting empty: %v", err)
		return types.Document{}
	}
	return doc
}

// save serializes doc atomically: write to a temp file in the same
// directory, then rename over the target.
func (s *Store) save(doc types.Document) error {
	dir := s.paths.Dir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".learnings-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath) //nolint:errcheck // best-effort cleanup
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
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
	if err := os.Rename(tmpPath, s.paths.learnings()); err != nil {
		return err
	}
	success = true
	return nil
}

// mutate performs a read-modify-write cycle under the store's lock, so a
// single process never interleaves two mutations, and always sees the
// latest on-disk state before deciding what to write.
func (s *Store) mutate(fn func(doc *types.Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	fn(&doc)
	return s.save(doc)
}

// GetAll returns every learning, including archived and promoted ones.
func (s *Store) GetAll() []types.Learning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Learnings
}

// GetActive returns learnings eligible for injection: not archived, not
// promoted, not inferred, confidence at or above threshold.
func (s *Store) GetActive(threshold float64) []types.Learning {
	var active []types.Learning
	for _, l := range s.GetAll() {
		if l.IsActive(threshold) {
			active = append(active, l)
		}
	}
	return active
}

// GetPromotable returns learnings meeting the promotion bar (I4/§8 point 4).
func (s *Store) GetPromotable() []types.Learning {
	var out []types.Learning
	for _, l := range s.GetAll() {
		if l.IsPromotable() {
			out = append(out, l)
		}
	}
	return out
}

// MarkPromoted flips Promoted on every learning whose id is in ids.
func (s *Store) MarkPromoted(ids []string) error {
	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	return s.mutate(func(doc *types.Document) {
		for i := range doc.Learnings {
			if _, ok := idSet[doc.Learnings[i].ID]; ok {
				doc.Learnings[i].Promoted = true
			}
		}
	})
}

// Remove deletes the learning at index from the document.
func (s *Store) Remove(index int) error {
	return s.mutate(func(doc *types.Document) {
		if index < 0 || index >= len(doc.Learnings) {
			return
		}
		doc.Learnings = append(doc.Learnings[:index], doc.Learnings[index+1:]...)
	})
}

// RemoveByID deletes the learning with the given id, if present.
func (s *Store) RemoveByID(id string) error {
	return s.mutate(func(doc *types.Document) {
		for i, l := range doc.Learnings {
			if l.ID == id {
				doc.Learnings = append(doc.Learnings[:i], doc.Learnings[i+1:]...)
				return
			}
		}
	})
}

// IncrementSessionCount bumps Meta.TotalSessions by one.
func (s *Store) IncrementSessionCount() error {
	return s.mutate(func(doc *types.Document) {
		doc.Meta.TotalSessions++
	})
}

// Reset discards every learning and resets Meta, but leaves the WAL and
// buffer files untouched (callers clear those separately).
func (s *Store) Reset() error {
	return s.save(types.Document{})
}

// Meta returns the store's bookkeeping metadata.
func (s *Store) Meta() types.Meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Meta
}

// MarkConsolidationRun records that a consolidation pass ran at the given
// session count.
func (s *Store) MarkConsolidationRun(sessionCount int) error {
	return s.mutate(func(doc *types.Document) {
		doc.Meta.LastConsolidation = time.Now().UTC()
		doc.Meta.ConsolidationSession = sessionCount
	})
}

// MarkProfileRun records the session count at which the profile was last
// synthesized.
func (s *Store) MarkProfileRun(sessionCount int) error {
	return s.mutate(func(doc *types.Document) {
		doc.Meta.LastProfileSession = sessionCount
	})
}

// ShouldCheckSelfUpdate reports whether at least
// types.SelfUpdateCheckIntervalHours have elapsed since the last check, per
// session-start's at-most-once-per-day self-update spawn.
func (s *Store) ShouldCheckSelfUpdate() bool {
	last := s.Meta().LastSelfUpdateCheck
	if last.IsZero() {
		return true
	}
	return time.Since(last) >= types.SelfUpdateCheckIntervalHours*time.Hour
}

// MarkSelfUpdateChecked records that a self-update check was just spawned.
func (s *Store) MarkSelfUpdateChecked() error {
	return s.mutate(func(doc *types.Document) {
		doc.Meta.LastSelfUpdateCheck = time.Now().UTC()
	})
}

// newID mints a fresh Learning identifier.
func newID() string {
	return uuid.NewString()
}
