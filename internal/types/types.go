// Package types defines the shared vocabulary of the opentell learning
// engine: classifications, scopes, detection methods, and the confidence
// thresholds every other package reasons about.
package types

// Classification is the depth-ordered category of a Learning.
// Depth order (deepest first): THINKING_PATTERN, DESIGN_PRINCIPLE,
// QUALITY_STANDARD, BEHAVIORAL_GAP, PREFERENCE.
type Classification string

const (
	ThinkingPattern  Classification = "THINKING_PATTERN"
	DesignPrinciple  Classification = "DESIGN_PRINCIPLE"
	QualityStandard  Classification = "QUALITY_STANDARD"
	Preference       Classification = "PREFERENCE"
	BehavioralGap    Classification = "BEHAVIORAL_GAP"
)

// classificationDepth assigns each classification its depth per spec:
// THINKING_PATTERN=5, DESIGN_PRINCIPLE=4, QUALITY_STANDARD=3, PREFERENCE=1,
// BEHAVIORAL_GAP=2.
var classificationDepth = map[Classification]int{
	ThinkingPattern: 5,
	DesignPrinciple: 4,
	QualityStandard: 3,
	Preference:      1,
	BehavioralGap:   2,
}

// Depth returns the classification's depth rank. Deeper classifications
// win on upgrade and are surfaced first by the context builder.
func (c Classification) Depth() int {
	return classificationDepth[c]
}

// Valid reports whether c is one of the five recognized classifications.
func (c Classification) Valid() bool {
	_, ok := classificationDepth[c]
	return ok
}

// DepthOrder lists all classifications from deepest to shallowest.
func DepthOrder() []Classification {
	return []Classification{ThinkingPattern, DesignPrinciple, QualityStandard, BehavioralGap, Preference}
}

// Scope indicates how broadly a Learning applies.
type Scope string

const (
	ScopeGlobal   Scope = "global"
	ScopeRepo     Scope = "repo"
	ScopeLanguage Scope = "language"
)

// Valid reports whether s is a recognized scope.
func (s Scope) Valid() bool {
	switch s {
	case ScopeGlobal, ScopeRepo, ScopeLanguage:
		return true
	}
	return false
}

// Area is a coarse tag describing what part of the system a Learning
// concerns.
type Area string

const (
	AreaArchitecture Area = "architecture"
	AreaFrontend     Area = "frontend"
	AreaBackend      Area = "backend"
	AreaTesting      Area = "testing"
	AreaDevops       Area = "devops"
	AreaData         Area = "data"
	AreaUX           Area = "ux"
	AreaGeneral      Area = "general"
)

// Valid reports whether a is one of the eight recognized areas.
func (a Area) Valid() bool {
	switch a {
	case AreaArchitecture, AreaFrontend, AreaBackend, AreaTesting, AreaDevops, AreaData, AreaUX, AreaGeneral:
		return true
	}
	return false
}

// DetectionMethod records the provenance of a signal or Learning.
type DetectionMethod string

const (
	DetectionRegex                       DetectionMethod = "regex"
	DetectionToolPattern                 DetectionMethod = "tool_pattern"
	DetectionLLM                         DetectionMethod = "llm"
	DetectionClaudeObservation           DetectionMethod = "claude_observation"
	DetectionValidatedObservation        DetectionMethod = "validated_observation"
	DetectionConsolidation               DetectionMethod = "consolidation"
	DetectionClaudeObservationAccepted   DetectionMethod = "claude_observation_accepted"
	DetectionClaudeObservationValidated  DetectionMethod = "claude_observation_validated"
)

// Certainty is the classifier's confidence bucket for a class/certainty
// starting-confidence lookup.
type Certainty string

const (
	CertaintyHigh Certainty = "high"
	CertaintyLow  Certainty = "low"
)

// Confidence and lifecycle thresholds, per spec.md §4.1.
const (
	// ActivationThreshold is the minimum confidence for a learning to be
	// "active" (non-inferred, injectable).
	ActivationThreshold = 0.45

	// PromotionThreshold is the minimum confidence for promotion.
	PromotionThreshold = 0.80

	// PromotionMinEvidence is the minimum evidence_count for promotion.
	PromotionMinEvidence = 4

	// ArchiveThreshold is the confidence floor below which a learning is
	// archived by decay.
	ArchiveThreshold = 0.15

	// InferredCap is the maximum confidence an inferred (unvalidated)
	// learning may carry. Enforced everywhere confidence is raised on an
	// inferred row.
	InferredCap = 0.44

	// ReinforcementIncrement is the confidence bump applied on every
	// reinforcement, both same-session and cross-session.
	//
	// The teacher's README documents a two-tier scheme (+0.08 same-session,
	// +0.15 new-session); the store itself applies +0.15 unconditionally.
	// spec.md §9 flags this discrepancy explicitly and instructs
	// implementers not to guess a resolution — ReinforcementIncrement
	// therefore implements the store's normative, unconditional behavior,
	// and callers must not special-case same-session reinforcement to +0.08.
	ReinforcementIncrement = 0.15

	// ObservationCorroborationIncrement bumps an existing non-inferred
	// match on addObservation.
	ObservationCorroborationIncrement = 0.03

	// ObservationInferredIncrement bumps a matching inferred row on
	// addObservation, capped at InferredCap.
	ObservationInferredIncrement = 0.05

	// PassiveAccumulationIncrement is applied to every inferred learning
	// once per applyPassiveAccumulation call, capped at InferredCap.
	PassiveAccumulationIncrement = 0.03

	// AlignmentConfidenceFloor is the confidence an inferred learning is
	// raised to (at minimum) when an explicit candidate aligns with it.
	AlignmentConfidenceFloor = ActivationThreshold

	// AlignmentConfidenceBoost is added to an inferred learning's current
	// confidence on alignment; the result is max()'d with
	// AlignmentConfidenceFloor.
	AlignmentConfidenceBoost = 0.25

	// DecayGraceDays is the number of days since last_reinforced before
	// mild decay begins.
	DecayGraceDays = 14

	// DecayStaleDays is the number of days since last_reinforced before
	// steep decay begins.
	DecayStaleDays = 30

	// DecayWeightMild multiplies decay_weight once staleness exceeds
	// DecayGraceDays.
	DecayWeightMild = 0.95

	// DecayWeightSteep multiplies decay_weight once staleness exceeds
	// DecayStaleDays.
	DecayWeightSteep = 0.90

	// CrossSessionBoostThreshold is the |session_ids| count that triggers
	// the one-time +0.10 cross-session boost.
	CrossSessionBoostThreshold = 3

	// CrossSessionBoostIncrement is the confidence bump applied once when
	// CrossSessionBoostThreshold is reached.
	CrossSessionBoostIncrement = 0.10

	// CrossSessionUpgrade1Threshold is the |session_ids| count that
	// upgrades PREFERENCE/BEHAVIORAL_GAP to QUALITY_STANDARD.
	CrossSessionUpgrade1Threshold = 4

	// CrossSessionUpgrade2Threshold is the |session_ids| count that
	// upgrades QUALITY_STANDARD to THINKING_PATTERN.
	CrossSessionUpgrade2Threshold = 5

	// CrossSessionUpgrade2Boost is the confidence bump applied on the
	// second upgrade.
	CrossSessionUpgrade2Boost = 0.05

	// EvidenceRingCap is the maximum number of evidence records retained
	// per learning (I3).
	EvidenceRingCap = 10

	// EvidenceFieldMaxBytes bounds each side of an evidence record.
	EvidenceFieldMaxBytes = 300

	// AnalyzedCacheCap bounds the session buffer's analyzed-fingerprint
	// dedup cache.
	AnalyzedCacheCap = 200

	// ToolEventBufferCap bounds the session buffer's tool event log.
	ToolEventBufferCap = 100

	// WALDrainCap bounds how many WAL pairs session-end will classify in
	// one invocation.
	WALDrainCap = 10

	// DuplicateJaccardThreshold is the word-similarity threshold above
	// which two learning cores are considered duplicates (I6).
	DuplicateJaccardThreshold = 0.7

	// AvoidsUsesSimilarityThreshold is the similarity threshold for
	// avoids-X vs uses-X contradiction detection.
	AvoidsUsesSimilarityThreshold = 0.6

	// ConsolidationMinCluster is the minimum cluster size for an affinity
	// group to be consolidated.
	ConsolidationMinCluster = 2

	// ConsolidationMinActive is the minimum number of active learnings
	// required before consolidation is considered.
	ConsolidationMinActive = 6

	// ConsolidationSessionGap is the minimum number of sessions since the
	// last consolidation run before another is considered.
	ConsolidationSessionGap = 5

	// ConsolidationConfidenceCeiling caps a synthesized learning's
	// confidence.
	ConsolidationConfidenceCeiling = 0.95

	// ConsolidationConfidenceBoost is added to the average member
	// confidence when synthesizing.
	ConsolidationConfidenceBoost = 0.05

	// ProfileMinActive is the minimum number of active learnings required
	// before a profile can be synthesized.
	ProfileMinActive = 3

	// ProfileSessionGap is the number of elapsed sessions since the last
	// synthesis that forces a refresh regardless of checksum.
	ProfileSessionGap = 10

	// ContextProfileModeMinActive is the active-learning count at or above
	// which the context builder prefers profile-mode over structured-mode.
	ContextProfileModeMinActive = 6

	// ContextAreaFilterMinActive is the active-learning count at or above
	// which an area filter may be applied.
	ContextAreaFilterMinActive = 15

	// SelfUpdateCheckIntervalHours bounds how often session-start may spawn a
	// self-update worker, in hours.
	SelfUpdateCheckIntervalHours = 24
)

// StartingConfidence returns the starting confidence for a newly detected
// signal, keyed by classification and certainty, per spec.md §4.1's table.
func StartingConfidence(c Classification, certainty Certainty) float64 {
	high := certainty == CertaintyHigh
	switch c {
	case ThinkingPattern, DesignPrinciple:
		if high {
			return 0.38
		}
		return 0.28
	case QualityStandard, Preference:
		if high {
			return 0.35
		}
		return 0.25
	case BehavioralGap:
		if high {
			return 0.30
		}
		return 0.20
	default:
		return 0.25
	}
}
