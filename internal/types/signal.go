package types

import "time"

// Signal is a candidate learning emitted by a detector, not yet persisted.
type Signal struct {
	Text            string
	Confidence      float64
	Classification  Classification
	Scope           Scope
	Area            Area
	DetectionMethod DetectionMethod

	// SessionID and the excerpt fields carry provenance forward into the
	// Evidence record the store attaches on insert.
	SessionID        string
	AssistantExcerpt string
	DeveloperExcerpt string
}

// Pair is one assistant utterance immediately followed by one developer
// utterance, drawn from the transcript.
type Pair struct {
	AssistantText string
	DeveloperText string
	Timestamp     time.Time
}

// Fingerprint returns a short, stable identifier for a pair used for
// session-buffer dedup (see SessionBuffer.Analyzed).
func (p Pair) Fingerprint() string {
	return fingerprint(p.AssistantText + "\x00" + p.DeveloperText)
}

// ToolEventKind enumerates the tool event kinds the session buffer records.
type ToolEventKind string

const (
	ToolEventBash  ToolEventKind = "bash"
	ToolEventWrite ToolEventKind = "write"
	ToolEventEdit  ToolEventKind = "edit"
)

// ToolEvent is a compact, bounded projection of a PostToolUse hook event.
type ToolEvent struct {
	Kind      ToolEventKind `json:"kind"`
	Timestamp time.Time     `json:"ts"`
	Command   string        `json:"command,omitempty"`  // Bash, truncated to 300 chars
	FilePath  string        `json:"file_path,omitempty"` // Write/Edit
}

// SessionBuffer is the ephemeral per-session structure accumulated between
// hook invocations.
type SessionBuffer struct {
	SessionID   string      `json:"session_id"`
	ToolEvents  []ToolEvent `json:"tool_events,omitempty"`
	LastStopTS  time.Time   `json:"last_stop_ts"`
	Analyzed    []string    `json:"analyzed,omitempty"` // bounded fingerprint dedup cache
}

// WALEntry is one ambiguous pair awaiting classification, durable across
// worker crashes.
type WALEntry struct {
	ClaudeSaid   string    `json:"claude_said"`
	UserSaid     string    `json:"user_said"`
	ErrorContext string    `json:"error_context,omitempty"`
	ToolContext  string    `json:"tool_context,omitempty"`
	WrittenAt    time.Time `json:"written_at"`
}

// Meta tracks store-wide bookkeeping.
type Meta struct {
	TotalSessions        int       `json:"total_sessions"`
	LastConsolidation    time.Time `json:"last_consolidation,omitempty"`
	ConsolidationSession int       `json:"consolidation_session,omitempty"`
	LastProfileSession   int       `json:"last_profile_session,omitempty"`
	LastSelfUpdateCheck  time.Time `json:"last_self_update_check,omitempty"`
}

// Profile is the synthesized narrative brief.
type Profile struct {
	Text          string    `json:"text"`
	GeneratedAt   time.Time `json:"generated_at"`
	LearningCount int       `json:"learning_count"`
	SessionCount  int       `json:"session_count"`
	Checksum      string    `json:"checksum"`
}

// Document is the on-disk shape of learnings.json.
type Document struct {
	Learnings []Learning `json:"learnings"`
	Meta      Meta       `json:"meta"`
}
