package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTranscript(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.jsonl")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadPairsBasic(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"message","timestamp":"2026-08-06T10:00:00Z","message":{"role":"assistant","content":"I will use interfaces here"}}`,
		`{"type":"message","timestamp":"2026-08-06T10:00:05Z","message":{"role":"user","content":"no, use a struct instead"}}`,
	)

	pairs, err := ReadPairs(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1", len(pairs))
	}
	if pairs[0].AssistantText != "I will use interfaces here" {
		t.Errorf("AssistantText = %q", pairs[0].AssistantText)
	}
	if pairs[0].DeveloperText != "no, use a struct instead" {
		t.Errorf("DeveloperText = %q", pairs[0].DeveloperText)
	}
}

func TestReadPairsSkipsMalformedLines(t *testing.T) {
	path := writeTranscript(t,
		`not json at all`,
		`{"type":"message","message":{"role":"assistant","content":"first candidate answer"}}`,
		`{"type":"message","message":{"role":"user","content":"looks good, ship it"}}`,
		``,
		`{"broken`,
	)

	pairs, err := ReadPairs(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1", len(pairs))
	}
}

func TestReadPairsStripsToolBlocks(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"message","message":{"role":"assistant","content":[{"type":"tool_use","text":"ignored"},{"type":"text","text":"here is the fix"}]}}`,
		`{"type":"message","message":{"role":"user","content":[{"type":"text","text":"that works for me"}]}}`,
	)

	pairs, err := ReadPairs(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1", len(pairs))
	}
	if pairs[0].AssistantText != "here is the fix" {
		t.Errorf("AssistantText = %q, want tool block stripped", pairs[0].AssistantText)
	}
}

func TestReadPairsDropsShortText(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"message","message":{"role":"assistant","content":"ok"}}`,
		`{"type":"message","message":{"role":"user","content":"sure thing, go ahead"}}`,
	)

	pairs, err := ReadPairs(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 0 {
		t.Fatalf("len(pairs) = %d, want 0 (assistant text too short)", len(pairs))
	}
}

func TestReadPairsRequiresImmediateAdjacency(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"message","message":{"role":"assistant","content":"first response text"}}`,
		`{"type":"message","message":{"role":"assistant","content":"second response text"}}`,
		`{"type":"message","message":{"role":"user","content":"only pairs with the second one"}}`,
	)

	pairs, err := ReadPairs(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1", len(pairs))
	}
	if pairs[0].AssistantText != "second response text" {
		t.Errorf("AssistantText = %q, want the immediately preceding assistant turn", pairs[0].AssistantText)
	}
}

func TestReadPairsMissingFile(t *testing.T) {
	pairs, err := ReadPairs(filepath.Join(t.TempDir(), "missing.jsonl"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if pairs != nil {
		t.Fatalf("expected nil pairs, got %v", pairs)
	}
}

func TestLastPairs(t *testing.T) {
	path := writeTranscript(t,
		`{"type":"message","message":{"role":"assistant","content":"response number one here"}}`,
		`{"type":"message","message":{"role":"user","content":"reply number one here"}}`,
		`{"type":"message","message":{"role":"assistant","content":"response number two here"}}`,
		`{"type":"message","message":{"role":"user","content":"reply number two here"}}`,
		`{"type":"message","message":{"role":"assistant","content":"response number three here"}}`,
		`{"type":"message","message":{"role":"user","content":"reply number three here"}}`,
	)

	pairs, err := LastPairs(path, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 {
		t.Fatalf("len(pairs) = %d, want 2", len(pairs))
	}
	if pairs[0].DeveloperText != "reply number two here" {
		t.Errorf("pairs[0].DeveloperText = %q", pairs[0].DeveloperText)
	}
	if pairs[1].DeveloperText != "reply number three here" {
		t.Errorf("pairs[1].DeveloperText = %q", pairs[1].DeveloperText)
	}
}
