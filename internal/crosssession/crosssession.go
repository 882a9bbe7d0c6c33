// Package crosssession applies the ladder of confidence boosts and
// classification upgrades a learning earns simply by surviving across
// multiple independent sessions — corroboration the single-session
// reinforcement algebra in internal/store never sees.
package crosssession

import (
	"time"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// sessionGapWindow is the minimum quiet period between evidence records
// that counts as a session boundary, used only when session_ids wasn't
// recorded on older rows.
const sessionGapWindow = 30 * time.Minute

// Analyze applies boost, upgrade-1, and upgrade-2 in order to every
// learning. It adds no session ids itself: the store records a signal's
// session id on the learning when the signal is inserted or reinforces it.
// Each rung is idempotent: a learning that already carries a rung's
// marker is skipped.
func Analyze(learnings []types.Learning) []types.Learning {
	for i := range learnings {
		l := &learnings[i]
		applyBoost(l)
		applyUpgrade1(l)
		applyUpgrade2(l)
	}
	return learnings
}

// sessionCount returns |session_ids| if populated, else an estimate
// derived from a 30-minute gap heuristic over evidence timestamps.
func sessionCount(l *types.Learning) int {
	if len(l.SessionIDs) > 0 {
		return len(l.SessionIDs)
	}
	return estimateSessionsFromEvidence(l.Evidence)
}

// estimateSessionsFromEvidence counts a new session every time the gap
// between consecutive (sorted) evidence timestamps exceeds
// sessionGapWindow.
func estimateSessionsFromEvidence(evidence []types.Evidence) int {
	if len(evidence) == 0 {
		return 0
	}
	times := make([]time.Time, len(evidence))
	for i, e := range evidence {
		times[i] = e.RecordedAt
	}
	sortTimes(times)

	sessions := 1
	for i := 1; i < len(times); i++ {
		if times[i].Sub(times[i-1]) > sessionGapWindow {
			sessions++
		}
	}
	return sessions
}

func sortTimes(times []time.Time) {
	for i := 1; i < len(times); i++ {
		for j := i; j > 0 && times[j].Before(times[j-1]); j-- {
			times[j], times[j-1] = times[j-1], times[j]
		}
	}
}

// applyBoost bumps confidence once a learning has been seen across
// CrossSessionBoostThreshold or more distinct sessions.
func applyBoost(l *types.Learning) {
	if l.CrossSessionBoosted {
		return
	}
	count := sessionCount(l)
	if count < types.CrossSessionBoostThreshold {
		return
	}
	l.Confidence = types.ClampConfidence(l.Confidence + types.CrossSessionBoostIncrement)
	l.CrossSessionBoosted = true
	l.CrossSessionCount = count
}

// applyUpgrade1 promotes PREFERENCE/BEHAVIORAL_GAP learnings that have
// proven durable across enough sessions to QUALITY_STANDARD.
func applyUpgrade1(l *types.Learning) {
	if l.ClassificationUpgradedFrom != "" {
		return
	}
	if l.Classification != types.Preference && l.Classification != types.BehavioralGap {
		return
	}
	if sessionCount(l) < types.CrossSessionUpgrade1Threshold {
		return
	}
	l.ClassificationUpgradedFrom = l.Classification
	l.Classification = types.QualityStandard
}

// applyUpgrade2 promotes a QUALITY_STANDARD learning that has kept
// proving itself to THINKING_PATTERN, the deepest classification.
func applyUpgrade2(l *types.Learning) {
	if l.DeepPatternUpgrade {
		return
	}
	if l.Classification != types.QualityStandard {
		return
	}
	if sessionCount(l) < types.CrossSessionUpgrade2Threshold {
		return
	}
	l.Classification = types.ThinkingPattern
	l.Confidence = types.ClampConfidence(l.Confidence + types.CrossSessionUpgrade2Boost)
	l.DeepPatternUpgrade = true
}
