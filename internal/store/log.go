package store

import (
	"fmt"
	"os"
	"time"
)

// Logf appends a timestamped diagnostic line to opentell.log. Hook
// orchestrators use this to record a swallowed error without ever
// propagating it — per spec.md §7, a hook must always exit 0.
func (s *Store) Logf(format string, args ...interface{}) {
	s.logf(format, args...)
}

// logf appends a single timestamped line to opentell.log. It never writes
// the API key or full message bodies (see spec.md §6) — callers pass only
// short, already-truncated strings. Failures to log are swallowed: logging
// must never be the reason a hook fails.
func (s *Store) logf(format string, args ...interface{}) {
	f, err := os.OpenFile(s.paths.log(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close() //nolint:errcheck // best-effort logging

	line := fmt.Sprintf("%s %s\n", time.Now().UTC().Format(time.RFC3339), fmt.Sprintf(format, args...))
	_, _ = f.WriteString(line) //nolint:errcheck // best-effort logging
}
