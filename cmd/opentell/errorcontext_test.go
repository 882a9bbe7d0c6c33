package main

import (
	"strings"
	"testing"
)

func TestExtractErrorContextFindsTypedError(t *testing.T) {
	text := "Running the build now. TypeError: cannot read property 'x' of undefined. Retrying."
	got := extractErrorContext(text)
	if !strings.Contains(got, "TypeError") {
		t.Errorf("expected TypeError in context, got %q", got)
	}
}

func TestExtractErrorContextFindsErrno(t *testing.T) {
	text := "spawn failed: ENOENT no such file or directory"
	got := extractErrorContext(text)
	if !strings.Contains(got, "ENOENT") {
		t.Errorf("expected ENOENT in context, got %q", got)
	}
}

func TestExtractErrorContextEmptyWhenNoIndicator(t *testing.T) {
	if got := extractErrorContext("Everything looks good, tests pass."); got != "" {
		t.Errorf("expected empty context, got %q", got)
	}
}

func TestExtractErrorContextBoundsSurround(t *testing.T) {
	pad := strings.Repeat("x", 500)
	text := pad + "command failed" + pad
	got := extractErrorContext(text)
	if len(got) > 2*errorContextSurround+len("command failed") {
		t.Errorf("context too long: %d bytes", len(got))
	}
}
