// Package hookio decodes the JSON event object Claude Code writes to a
// hook's standard input, per spec.md §6's hook interface. Every opentell
// hook subcommand — session-start, turn-stop, tool-use, session-end —
// shares this one decoding step before branching into its own pipeline.
package hookio

import (
	"encoding/json"
	"fmt"
	"io"
)

// Event is the JSON object Claude Code sends to a hook on standard input.
// Only the fields opentell's hooks consume are named; ToolInput varies in
// shape by tool and is decoded lazily via ToolInput's helper methods.
type Event struct {
	SessionID      string          `json:"session_id"`
	Source         string          `json:"source"`
	StopHookActive bool            `json:"stop_hook_active"`
	TranscriptPath string          `json:"transcript_path"`
	ToolName       string          `json:"tool_name"`
	ToolInput      json.RawMessage `json:"tool_input"`
	Reason         string          `json:"reason"`
}

// toolInputShape covers the fields opentell reads out of tool_input across
// the tools it cares about (Bash, Write, Edit). Other tools' inputs decode
// into zero values, which is fine — those events are filtered out upstream.
type toolInputShape struct {
	Command  string `json:"command"`
	FilePath string `json:"file_path"`
}

// Command returns tool_input.command, or "" if absent or not a Bash call.
func (e Event) Command() string {
	var shape toolInputShape
	if err := json.Unmarshal(e.ToolInput, &shape); err != nil {
		return ""
	}
	return shape.Command
}

// FilePath returns tool_input.file_path, or "" if absent.
func (e Event) FilePath() string {
	var shape toolInputShape
	if err := json.Unmarshal(e.ToolInput, &shape); err != nil {
		return ""
	}
	return shape.FilePath
}

// Decode reads one hook event from r. A hook must always exit 0 even when
// its own logic fails, but a malformed event on stdin is still reported to
// the caller so it can be logged before the hook exits clean.
func Decode(r io.Reader) (Event, error) {
	var e Event
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return Event{}, fmt.Errorf("decode hook event: %w", err)
	}
	return e, nil
}
