package store

import "errors"

// Sentinel errors for the store package. Sentinels let callers match with
// errors.Is instead of string comparison.
var (
	// ErrLearningNotFound is returned when an operation references an id
	// that does not exist in the current document.
	ErrLearningNotFound = errors.New("learning not found")

	// ErrEmptyWALEntry is returned when appendWal is given a pair with no
	// text on either side.
	ErrEmptyWALEntry = errors.New("empty WAL entry")
)
