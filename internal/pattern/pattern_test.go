package pattern

import (
	"testing"

	"github.com/shobhit-87labs/opentell/internal/types"
)

func TestDetectCorrection(t *testing.T) {
	pair := types.Pair{
		AssistantText: "I'll install this with npm.",
		DeveloperText: "no, use pnpm",
	}

	result := Detect(pair)
	if !result.Detected {
		t.Fatal("expected a signal to be detected")
	}
	if len(result.Signals) != 1 {
		t.Fatalf("len(Signals) = %d, want 1", len(result.Signals))
	}
	sig := result.Signals[0]
	if sig.Text != "Prefers pnpm" {
		t.Errorf("Text = %q, want %q", sig.Text, "Prefers pnpm")
	}
	if sig.Confidence != 0.35 {
		t.Errorf("Confidence = %v, want 0.35", sig.Confidence)
	}
	if sig.Classification != types.Preference {
		t.Errorf("Classification = %v, want PREFERENCE", sig.Classification)
	}
}

func TestDetectToolUsage(t *testing.T) {
	pair := types.Pair{
		AssistantText: "What test runner should I set up?",
		DeveloperText: "uses vitest",
	}
	result := Detect(pair)
	if !result.Detected {
		t.Fatal("expected a signal")
	}
	if result.Signals[0].Text != "Uses vitest" {
		t.Errorf("Text = %q, want %q", result.Signals[0].Text, "Uses vitest")
	}
}

func TestDetectThinkingPattern(t *testing.T) {
	pair := types.Pair{DeveloperText: "let's keep it simple for now"}
	result := Detect(pair)
	if !result.Detected {
		t.Fatal("expected a signal")
	}
	if result.Signals[0].Classification != types.ThinkingPattern {
		t.Errorf("Classification = %v, want THINKING_PATTERN", result.Signals[0].Classification)
	}
}

func TestDetectNoiseAffirmation(t *testing.T) {
	pair := types.Pair{DeveloperText: "thanks!"}
	result := Detect(pair)
	if !result.Noise {
		t.Fatal("expected pure affirmation to be treated as noise")
	}
	if result.Detected {
		t.Fatal("noise must not produce signals")
	}
}

func TestDetectNoiseQuestionWithoutCorrection(t *testing.T) {
	pair := types.Pair{DeveloperText: "why did that fail?"}
	result := Detect(pair)
	if !result.Noise {
		t.Fatal("expected plain question to be treated as noise")
	}
}

func TestDetectQuestionWithCorrectionSurvives(t *testing.T) {
	pair := types.Pair{DeveloperText: "why not use pnpm instead?"}
	result := Detect(pair)
	if result.Noise {
		t.Fatal("a question containing a correction keyword should not be filtered as noise")
	}
}

func TestDetectFactualBugReportIsNoise(t *testing.T) {
	pair := types.Pair{DeveloperText: "that's wrong, it throws an error"}
	result := Detect(pair)
	if !result.Noise {
		t.Fatal("expected factual bug report to be treated as noise")
	}
}

func TestDetectDedupesOverlappingFamilies(t *testing.T) {
	pair := types.Pair{DeveloperText: "we use pnpm for everything, always use pnpm here"}
	result := Detect(pair)
	if len(result.Signals) == 0 {
		t.Fatal("expected at least one signal")
	}
	seen := make(map[string]bool)
	for _, sig := range result.Signals {
		core := types.NormalizeCore(sig.Text)
		for existing := range seen {
			if types.JaccardSimilarity(core, existing) > types.DuplicateJaccardThreshold {
				t.Fatalf("signals %q and a prior signal should have been deduped", sig.Text)
			}
		}
		seen[core] = true
	}
}

func TestDetectNoSignalOnPlainStatement(t *testing.T) {
	pair := types.Pair{DeveloperText: "the deployment finished around noon yesterday"}
	result := Detect(pair)
	if result.Detected {
		t.Fatalf("expected no signal, got %+v", result.Signals)
	}
}
