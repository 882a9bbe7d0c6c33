package profile

import (
	"context"
	"testing"

	"github.com/shobhit-87labs/opentell/internal/classifier"
	"github.com/shobhit-87labs/opentell/internal/types"
)

func threeActive() []types.Learning {
	return []types.Learning{
		{ID: "1", Text: "Always thinks about failure modes first", Classification: types.ThinkingPattern, Confidence: 0.6},
		{ID: "2", Text: "Uses pnpm", Classification: types.Preference, Confidence: 0.5},
		{ID: "3", Text: "Writes tests before shipping", Classification: types.QualityStandard, Confidence: 0.55},
	}
}

func TestChecksumStableAcrossOrder(t *testing.T) {
	a := threeActive()
	b := []types.Learning{a[2], a[0], a[1]}

	if Checksum(a) != Checksum(b) {
		t.Error("expected checksum to be stable regardless of slice order")
	}
}

func TestChecksumChangesOnConfidenceDrift(t *testing.T) {
	a := threeActive()
	b := threeActive()
	b[0].Confidence = 0.99

	if Checksum(a) == Checksum(b) {
		t.Error("expected checksum to change when a member's confidence changes")
	}
}

func TestNeedsUpdateRequiresMinActive(t *testing.T) {
	if NeedsUpdate(threeActive()[:1], nil, 1) {
		t.Fatal("expected false below ProfileMinActive")
	}
}

func TestNeedsUpdateTrueWithNoExistingProfile(t *testing.T) {
	if !NeedsUpdate(threeActive(), nil, 1) {
		t.Fatal("expected true when no profile exists yet")
	}
}

func TestNeedsUpdateFalseWhenChecksumMatchesAndGapSmall(t *testing.T) {
	active := threeActive()
	existing := &types.Profile{Checksum: Checksum(active), SessionCount: 5}
	if NeedsUpdate(active, existing, 6) {
		t.Fatal("expected false: checksum matches and session gap below threshold")
	}
}

func TestNeedsUpdateTrueOnChecksumDrift(t *testing.T) {
	active := threeActive()
	existing := &types.Profile{Checksum: "stale", SessionCount: 5}
	if !NeedsUpdate(active, existing, 6) {
		t.Fatal("expected true: checksum drifted")
	}
}

func TestNeedsUpdateTrueOnSessionGap(t *testing.T) {
	active := threeActive()
	existing := &types.Profile{Checksum: Checksum(active), SessionCount: 1}
	if !NeedsUpdate(active, existing, 11) {
		t.Fatal("expected true: 10 sessions elapsed since last synthesis")
	}
}

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, classifier.Usage, error) {
	if f.err != nil {
		return "", classifier.Usage{}, f.err
	}
	return f.text, classifier.Usage{}, nil
}

func TestSynthesizeBuildsProfile(t *testing.T) {
	active := threeActive()
	gen := &fakeGenerator{text: "Thinks in failure modes, ships tested code, and reaches for pnpm by habit.\n"}

	p, err := Synthesize(context.Background(), gen, active, 4)
	if err != nil {
		t.Fatal(err)
	}
	if p.LearningCount != 3 {
		t.Errorf("LearningCount = %d, want 3", p.LearningCount)
	}
	if p.SessionCount != 4 {
		t.Errorf("SessionCount = %d, want 4", p.SessionCount)
	}
	if p.Checksum != Checksum(active) {
		t.Error("expected checksum computed from the same active set")
	}
	if p.Text == "" {
		t.Error("expected non-empty narrative text")
	}
}

func TestSynthesizeRejectsEmptyNarrative(t *testing.T) {
	gen := &fakeGenerator{text: "   "}
	if _, err := Synthesize(context.Background(), gen, threeActive(), 1); err == nil {
		t.Fatal("expected error on empty narrative")
	}
}
