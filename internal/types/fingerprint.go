package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprint returns a short stable hash of s, used for the session
// buffer's analyzed-pair dedup cache. Sixteen hex characters is ample to
// avoid collisions within one session's pair volume while keeping the
// cache's memory footprint small.
func fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
