package crosssession

import (
	"testing"
	"time"

	"github.com/shobhit-87labs/opentell/internal/types"
)

func timeAt(seconds int64) time.Time {
	return time.Unix(1_700_000_000+seconds, 0).UTC()
}

func withSessions(l types.Learning, n int) types.Learning {
	for i := 0; i < n; i++ {
		l.AddSessionID(itoa(i))
	}
	return l
}

func itoa(n int) string {
	digits := []byte{byte('0' + n%10)}
	return string(digits)
}

// Scenario B — cross-session boost.
func TestApplyBoostAtThreshold(t *testing.T) {
	l := withSessions(types.Learning{Classification: types.Preference, Confidence: 0.5}, 3)
	result := Analyze([]types.Learning{l})[0]

	if !result.CrossSessionBoosted {
		t.Fatal("expected boost at 3 sessions")
	}
	if result.Confidence < 0.599 || result.Confidence > 0.601 {
		t.Errorf("Confidence = %v, want ~0.60", result.Confidence)
	}
}

func TestApplyBoostIsIdempotent(t *testing.T) {
	l := withSessions(types.Learning{Classification: types.Preference, Confidence: 0.5}, 3)
	once := Analyze([]types.Learning{l})[0]
	twice := Analyze([]types.Learning{once})[0]

	if once.Confidence != twice.Confidence {
		t.Errorf("boost applied twice: %v != %v", once.Confidence, twice.Confidence)
	}
}

func TestUpgrade1PromotesPreferenceToQuality(t *testing.T) {
	l := withSessions(types.Learning{Classification: types.Preference, Confidence: 0.5}, 4)
	result := Analyze([]types.Learning{l})[0]

	if result.Classification != types.QualityStandard {
		t.Errorf("Classification = %v, want QUALITY_STANDARD", result.Classification)
	}
	if result.ClassificationUpgradedFrom != types.Preference {
		t.Errorf("ClassificationUpgradedFrom = %v, want PREFERENCE", result.ClassificationUpgradedFrom)
	}
}

func TestUpgrade2PromotesQualityToThinking(t *testing.T) {
	l := withSessions(types.Learning{Classification: types.QualityStandard, Confidence: 0.5}, 5)
	result := Analyze([]types.Learning{l})[0]

	if result.Classification != types.ThinkingPattern {
		t.Errorf("Classification = %v, want THINKING_PATTERN", result.Classification)
	}
	if !result.DeepPatternUpgrade {
		t.Fatal("expected deep_pattern_upgrade flag")
	}
	// 5 sessions also clears the boost threshold (3), so confidence
	// reflects both bumps: 0.5 + 0.10 (boost) + 0.05 (upgrade-2).
	if result.Confidence < 0.649 || result.Confidence > 0.651 {
		t.Errorf("Confidence = %v, want ~0.65", result.Confidence)
	}
}

func TestBelowThresholdLeavesLearningUnchanged(t *testing.T) {
	l := withSessions(types.Learning{Classification: types.Preference, Confidence: 0.5}, 2)
	result := Analyze([]types.Learning{l})[0]

	if result.CrossSessionBoosted {
		t.Fatal("2 sessions must not trigger boost")
	}
	if result.Classification != types.Preference {
		t.Errorf("Classification changed unexpectedly to %v", result.Classification)
	}
}

func TestEstimateSessionsFromEvidenceGapHeuristic(t *testing.T) {
	l := types.Learning{
		Classification: types.Preference,
		Confidence:     0.5,
		Evidence: []types.Evidence{
			{RecordedAt: timeAt(0)},
			{RecordedAt: timeAt(5 * 60)},          // +5m, same session
			{RecordedAt: timeAt(2 * 60 * 60)},     // +2h, new session
			{RecordedAt: timeAt(2*60*60 + 1*60)},  // +1m later, same session
		},
	}
	if got := sessionCount(&l); got != 2 {
		t.Errorf("sessionCount = %d, want 2", got)
	}
}
