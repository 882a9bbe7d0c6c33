package hookio

import (
	"strings"
	"testing"
)

func TestDecodeParsesKnownFields(t *testing.T) {
	body := `{
		"session_id": "sess-1",
		"source": "startup",
		"stop_hook_active": true,
		"transcript_path": "/tmp/transcript.jsonl",
		"tool_name": "Bash",
		"tool_input": {"command": "go test ./..."},
		"reason": "user requested"
	}`
	e, err := Decode(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if e.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", e.SessionID)
	}
	if !e.StopHookActive {
		t.Error("expected StopHookActive true")
	}
	if e.TranscriptPath != "/tmp/transcript.jsonl" {
		t.Errorf("TranscriptPath = %q", e.TranscriptPath)
	}
	if e.Command() != "go test ./..." {
		t.Errorf("Command() = %q, want %q", e.Command(), "go test ./...")
	}
}

func TestDecodeFilePathForWriteAndEdit(t *testing.T) {
	body := `{"tool_name": "Write", "tool_input": {"file_path": "/repo/main.go"}}`
	e, err := Decode(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if e.FilePath() != "/repo/main.go" {
		t.Errorf("FilePath() = %q, want /repo/main.go", e.FilePath())
	}
}

func TestCommandEmptyWhenToolInputMissing(t *testing.T) {
	e, err := Decode(strings.NewReader(`{"session_id": "sess-2"}`))
	if err != nil {
		t.Fatal(err)
	}
	if e.Command() != "" {
		t.Errorf("Command() = %q, want empty", e.Command())
	}
	if e.FilePath() != "" {
		t.Errorf("FilePath() = %q, want empty", e.FilePath())
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{not json`))
	if err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
