package store

import (
	"bufio"
	"encoding/json"
	"os"
	"time"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// AppendWAL appends one ambiguous pair to wal.jsonl and returns the entry
// as written, WrittenAt stamped, so callers that hand it off to a detached
// classifier worker can later remove exactly this entry. The WAL is
// append-only on writes (§5); removal rewrites the whole file.
func (s *Store) AppendWAL(entry types.WALEntry) (types.WALEntry, error) {
	if entry.ClaudeSaid == "" && entry.UserSaid == "" {
		return types.WALEntry{}, ErrEmptyWALEntry
	}
	entry.WrittenAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.paths.Dir, 0o700); err != nil {
		return types.WALEntry{}, err
	}
	f, err := os.OpenFile(s.paths.wal(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return types.WALEntry{}, err
	}
	defer f.Close() //nolint:errcheck // sync below covers durability

	data, err := json.Marshal(entry)
	if err != nil {
		return types.WALEntry{}, err
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return types.WALEntry{}, err
	}
	if err := f.Sync(); err != nil {
		return types.WALEntry{}, err
	}
	return entry, nil
}

// DrainWAL returns every entry currently in the WAL without modifying the
// file — non-destructive per spec.md §8's round-trip property.
func (s *Store) DrainWAL() ([]types.WALEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readWAL()
}

func (s *Store) readWAL() ([]types.WALEntry, error) {
	f, err := os.Open(s.paths.wal())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only

	var entries []types.WALEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry types.WALEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue // skip malformed lines
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

// RemoveFromWAL rewrites the WAL without the given entry (matched by
// ClaudeSaid+UserSaid+WrittenAt), used after a single entry is classified
// successfully, both by the detached classify worker and by session-end's
// drain.
func (s *Store) RemoveFromWAL(entry types.WALEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readWAL()
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ClaudeSaid == entry.ClaudeSaid && e.UserSaid == entry.UserSaid && e.WrittenAt.Equal(entry.WrittenAt) {
			continue
		}
		kept = append(kept, e)
	}
	return s.writeWAL(kept)
}

// ClearWAL truncates the WAL entirely.
func (s *Store) ClearWAL() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeWAL(nil)
}

func (s *Store) writeWAL(entries []types.WALEntry) error {
	dir := s.paths.Dir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".wal-*.tmp")
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

	w := bufio.NewWriter(tmp)
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			_ = tmp.Close() //nolint:errcheck // cleanup path
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			_ = tmp.Close() //nolint:errcheck // cleanup path
			return err
		}
	}
	if err := w.Flush(); err != nil {
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
	if err := os.Rename(tmpPath, s.paths.wal()); err != nil {
		return err
	}
	success = true
	return nil
}
