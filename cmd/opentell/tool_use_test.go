package main

import (
	"encoding/json"
	"testing"

	"github.com/shobhit-87labs/opentell/internal/config"
	"github.com/shobhit-87labs/opentell/internal/store"
	"github.com/shobhit-87labs/opentell/internal/types"
	"github.com/shobhit-87labs/opentell/pkg/hookio"
)

func TestTruncateString(t *testing.T) {
	if got := truncateString("hello", 10); got != "hello" {
		t.Fatalf("truncateString short = %q, want %q", got, "hello")
	}
	if got := truncateString("hello world", 5); got != "hello" {
		t.Fatalf("truncateString long = %q, want %q", got, "hello")
	}
}

func TestHandleToolUseRecordsBashCommand(t *testing.T) {
	st := store.New(store.Paths{Dir: t.TempDir()})
	cfg := config.Default()

	input, _ := json.Marshal(map[string]string{"command": "npm test"})
	event := hookio.Event{
		SessionID: "sess-1",
		ToolName:  "Bash",
		ToolInput: input,
	}

	if err := handleToolUse(st, cfg, event); err != nil {
		t.Fatal(err)
	}

	buf := st.LoadBuffer()
	if len(buf.ToolEvents) != 1 {
		t.Fatalf("len(ToolEvents) = %d, want 1", len(buf.ToolEvents))
	}
	if buf.ToolEvents[0].Kind != types.ToolEventBash {
		t.Fatalf("Kind = %v, want ToolEventBash", buf.ToolEvents[0].Kind)
	}
	if buf.ToolEvents[0].Command != "npm test" {
		t.Fatalf("Command = %q, want %q", buf.ToolEvents[0].Command, "npm test")
	}
}

func TestHandleToolUseIgnoresUnknownTool(t *testing.T) {
	st := store.New(store.Paths{Dir: t.TempDir()})
	cfg := config.Default()

	event := hookio.Event{SessionID: "sess-1", ToolName: "Read"}
	if err := handleToolUse(st, cfg, event); err != nil {
		t.Fatal(err)
	}

	buf := st.LoadBuffer()
	if len(buf.ToolEvents) != 0 {
		t.Fatalf("len(ToolEvents) = %d, want 0", len(buf.ToolEvents))
	}
}
