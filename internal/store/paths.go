package store

import (
	"os"
	"path/filepath"

	"github.com/shobhit-87labs/opentell/internal/config"
)

// File names within the state directory, per spec.md §6.
const (
	learningsFileName = "learnings.json"
	walFileName       = "wal.jsonl"
	bufferFileName    = "session-buffer.json"
	profileFileName   = "profile.json"
	logFileName       = "opentell.log"
	statsFileName     = "stats.json"
)

// Paths resolves the on-disk locations the store reads and writes.
type Paths struct {
	Dir string
}

// DefaultPaths resolves Paths against ~/.opentell, creating the directory
// if it does not yet exist.
func DefaultPaths() (Paths, error) {
	dir := config.HomeDir()
	if dir == "" {
		dir = filepath.Join(os.TempDir(), config.StateDirName)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return Paths{}, err
	}
	return Paths{Dir: dir}, nil
}

func (p Paths) learnings() string { return filepath.Join(p.Dir, learningsFileName) }
func (p Paths) wal() string       { return filepath.Join(p.Dir, walFileName) }
func (p Paths) buffer() string    { return filepath.Join(p.Dir, bufferFileName) }
func (p Paths) profile() string   { return filepath.Join(p.Dir, profileFileName) }
func (p Paths) log() string       { return filepath.Join(p.Dir, logFileName) }
func (p Paths) stats() string     { return filepath.Join(p.Dir, statsFileName) }

// Profile returns the path to profile.json, for the profile package.
func (p Paths) Profile() string { return p.profile() }

// Log returns the path to opentell.log, for shared logging.
func (p Paths) Log() string { return p.log() }

// Stats returns the path to stats.json, for the statlog package.
func (p Paths) Stats() string { return p.stats() }
