package main

import (
	"testing"

	"github.com/shobhit-87labs/opentell/internal/config"
)

func TestConfigFieldRoundTrip(t *testing.T) {
	cfg := config.Default()

	if err := setConfigField(cfg, "classifier_model", "claude-haiku-test"); err != nil {
		t.Fatal(err)
	}
	got, err := configField(cfg, "classifier_model")
	if err != nil {
		t.Fatal(err)
	}
	if got != "claude-haiku-test" {
		t.Fatalf("classifier_model = %q, want %q", got, "claude-haiku-test")
	}

	if err := setConfigField(cfg, "confidence_threshold", "0.6"); err != nil {
		t.Fatal(err)
	}
	if cfg.ConfidenceThreshold != 0.6 {
		t.Fatalf("ConfidenceThreshold = %v, want 0.6", cfg.ConfidenceThreshold)
	}

	if err := setConfigField(cfg, "max_learnings", "42"); err != nil {
		t.Fatal(err)
	}
	if cfg.MaxLearnings != 42 {
		t.Fatalf("MaxLearnings = %d, want 42", cfg.MaxLearnings)
	}

	if err := setConfigField(cfg, "paused", "true"); err != nil {
		t.Fatal(err)
	}
	if !cfg.Paused {
		t.Fatal("Paused = false, want true")
	}
}

func TestSetConfigFieldRejectsBadValues(t *testing.T) {
	cfg := config.Default()

	if err := setConfigField(cfg, "confidence_threshold", "not-a-number"); err == nil {
		t.Fatal("expected error for non-numeric confidence_threshold")
	}
	if err := setConfigField(cfg, "max_learnings", "not-an-int"); err == nil {
		t.Fatal("expected error for non-integer max_learnings")
	}
	if err := setConfigField(cfg, "paused", "maybe"); err == nil {
		t.Fatal("expected error for non-boolean paused")
	}
	if err := setConfigField(cfg, "nonexistent_field", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestConfigFieldUnknownKey(t *testing.T) {
	cfg := config.Default()
	if _, err := configField(cfg, "nonexistent_field"); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestRedactAPIKey(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"", ""},
		{"short", "****"},
		{"sk-ant-1234567890abcdef", "sk-a...cdef"},
	}
	for _, c := range cases {
		if got := redactAPIKey(c.key); got != c.want {
			t.Errorf("redactAPIKey(%q) = %q, want %q", c.key, got, c.want)
		}
	}
}
