package store

import (
	"encoding/json"
	"os"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// LoadProfile reads profile.json, reporting ok=false for a missing or
// corrupt file so callers treat "no profile yet" and "unreadable profile"
// identically — both mean synthesize one.
func (s *Store) LoadProfile() (types.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.paths.Profile())
	if err != nil {
		return types.Profile{}, false
	}
	var p types.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return types.Profile{}, false
	}
	return p, true
}

// SaveProfile writes p atomically, following the same write-temp-then-
// rename pattern as SaveBuffer.
func (s *Store) SaveProfile(p types.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.paths.Dir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".profile-*.tmp")
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
	if err := enc.Encode(p); err != nil {
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
	if err := os.Rename(tmpPath, s.paths.Profile()); err != nil {
		return err
	}
	success = true
	return nil
}
