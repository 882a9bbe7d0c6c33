package observer

import (
	"testing"

	"github.com/shobhit-87labs/opentell/internal/types"
)

func TestDetectObservationsSelfAdaptation(t *testing.T) {
	text := "I'll use pnpm since the project already uses pnpm for everything."
	signals := DetectObservations(text)
	if len(signals) == 0 {
		t.Fatal("expected at least one observation")
	}
	if signals[0].DetectionMethod != types.DetectionClaudeObservation {
		t.Errorf("DetectionMethod = %v, want claude_observation", signals[0].DetectionMethod)
	}
	if signals[0].Confidence != 0.25 {
		t.Errorf("Confidence = %v, want 0.25", signals[0].Confidence)
	}
}

func TestDetectObservationsNoMatch(t *testing.T) {
	if signals := DetectObservations("Here is the fix for the bug."); len(signals) != 0 {
		t.Fatalf("expected no observations, got %+v", signals)
	}
}

func TestDetectObservationsScanLimit(t *testing.T) {
	padding := make([]byte, observationScanLimit+50)
	for i := range padding {
		padding[i] = 'x'
	}
	text := string(padding) + " I'll use pnpm since the project already uses pnpm."
	if signals := DetectObservations(text); len(signals) != 0 {
		t.Fatalf("expected match beyond scan limit to be ignored, got %+v", signals)
	}
}

// Scenario D — validated observation.
func TestDetectValidatedAcceptsShortAffirmation(t *testing.T) {
	assistant := "I'll use pnpm since the project already uses pnpm here."
	sig, ok := DetectValidated(assistant, "yes exactly")
	if !ok {
		t.Fatal("expected validated observation")
	}
	if sig.Confidence != validatedConfidence {
		t.Errorf("Confidence = %v, want %v", sig.Confidence, validatedConfidence)
	}
	if sig.DetectionMethod != types.DetectionValidatedObservation {
		t.Errorf("DetectionMethod = %v, want validated_observation", sig.DetectionMethod)
	}
}

func TestDetectValidatedRejectsCorrection(t *testing.T) {
	assistant := "I'll use pnpm since the project already uses pnpm here."
	if _, ok := DetectValidated(assistant, "no, use npm instead"); ok {
		t.Fatal("expected rejection pattern to suppress validation")
	}
}

func TestDetectValidatedRejectsLongReply(t *testing.T) {
	assistant := "I'll use pnpm since the project already uses pnpm here."
	long := "yes that's exactly right and also please make sure the tests still pass before committing anything"
	if _, ok := DetectValidated(assistant, long); ok {
		t.Fatal("expected long developer reply to be rejected")
	}
}

func TestDetectValidatedRequiresCandidate(t *testing.T) {
	if _, ok := DetectValidated("Here is the fix.", "yes exactly"); ok {
		t.Fatal("expected no validation without an underlying observation")
	}
}
