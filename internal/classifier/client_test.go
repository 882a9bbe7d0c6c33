package classifier

import (
	"context"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/shobhit-87labs/opentell/internal/types"
)

type fakeMessageClient struct {
	text string
	err  error
}

func (f *fakeMessageClient) New(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.Message{
		Content: []anthropic.ContentBlockUnion{{Type: "text", Text: f.text}},
	}, nil
}

func TestClassifyParsesLearningResult(t *testing.T) {
	fake := &fakeMessageClient{text: `{"classification":"PREFERENCE","learning":"Prefers pnpm","scope":"global","certainty":"high","area":"general"}`}
	c := newWithClient(fake, "claude-3-5-haiku-latest")

	result, err := c.Classify(context.Background(), types.Pair{AssistantText: "I'll use npm", DeveloperText: "no, pnpm"}, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsLearning() {
		t.Fatal("expected a learning-bearing result")
	}
	if result.Learning != "Prefers pnpm" {
		t.Errorf("Learning = %q, want %q", result.Learning, "Prefers pnpm")
	}
}

func TestClassifyRejectionClassIsNotLearning(t *testing.T) {
	fake := &fakeMessageClient{text: `{"classification":"SITUATIONAL"}`}
	c := newWithClient(fake, "claude-3-5-haiku-latest")

	result, err := c.Classify(context.Background(), types.Pair{AssistantText: "a", DeveloperText: "b"}, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if result.IsLearning() {
		t.Fatal("SITUATIONAL must not be treated as a learning")
	}
}

func TestClassifyMalformedJSONDoesNotError(t *testing.T) {
	fake := &fakeMessageClient{text: "not json at all"}
	c := newWithClient(fake, "claude-3-5-haiku-latest")

	result, err := c.Classify(context.Background(), types.Pair{AssistantText: "a", DeveloperText: "b"}, "", "")
	if err != nil {
		t.Fatalf("classifier hiccups must not propagate as errors: %v", err)
	}
	if result.IsLearning() {
		t.Fatal("expected a non-learning error result")
	}
}

func TestToSignalDerivesStartingConfidence(t *testing.T) {
	result := Result{Classification: string(types.Preference), Learning: "Uses pnpm", Certainty: types.CertaintyHigh}
	sig := result.ToSignal(types.Pair{AssistantText: "a", DeveloperText: "b"})
	if sig.Confidence != 0.35 {
		t.Errorf("Confidence = %v, want 0.35", sig.Confidence)
	}
	if sig.DetectionMethod != types.DetectionLLM {
		t.Errorf("DetectionMethod = %v, want llm", sig.DetectionMethod)
	}
}
