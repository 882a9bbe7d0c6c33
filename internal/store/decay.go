package store

import (
	"time"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// ApplyDecay ages every non-terminal learning: past DecayGraceDays since
// last reinforcement, decay_weight is multiplied by DecayWeightMild; past
// DecayStaleDays, by DecayWeightSteep. A learning whose confidence falls
// below ArchiveThreshold is archived. Idempotent within the same second
// (§8): re-running against an unchanged last_reinforced multiplies
// decay_weight again, matching the teacher's decay-on-every-invocation
// design rather than a once-per-day gate.
func (s *Store) ApplyDecay() error {
	now := time.Now().UTC()
	return s.mutate(func(doc *types.Document) {
		for i := range doc.Learnings {
			l := &doc.Learnings[i]
			if l.Archived || l.Promoted {
				continue
			}

			days := now.Sub(l.LastReinforced).Hours() / 24
			switch {
			case days > types.DecayStaleDays:
				l.DecayWeight *= types.DecayWeightSteep
				l.Confidence = types.ClampConfidence(l.Confidence * l.DecayWeight)
			case days > types.DecayGraceDays:
				l.DecayWeight *= types.DecayWeightMild
				l.Confidence = types.ClampConfidence(l.Confidence * l.DecayWeight)
			}

			if l.Confidence < types.ArchiveThreshold {
				l.Archived = true
				l.ArchivedReason = "Decayed below threshold"
			}
		}
	})
}

// ApplyPassiveAccumulation nudges every inferred learning's confidence
// upward, capped at InferredCap, without ever promoting it to active.
func (s *Store) ApplyPassiveAccumulation() error {
	return s.mutate(func(doc *types.Document) {
		for i := range doc.Learnings {
			l := &doc.Learnings[i]
			if l.Archived || !l.Inferred {
				continue
			}
			l.Confidence = types.ClampConfidence(minFloat(l.Confidence+types.PassiveAccumulationIncrement, types.InferredCap))
		}
	})
}
