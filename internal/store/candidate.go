package store

import (
	"time"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// AddCandidate inserts or reinforces a learning from an explicit signal
// (pattern detector, tool-signal detector, validated observation, or
// classifier output). It applies, in order: alignment with a matching
// inferred row, contradiction archival, then duplicate merge-or-create.
func (s *Store) AddCandidate(sig types.Signal) (*types.Learning, error) {
	var result types.Learning
	now := time.Now().UTC()

	err := s.mutate(func(doc *types.Document) {
		candidateCore := normalizeCore(sig.Text)
		candidatePrefix := extractPrefix(sig.Text)

		// Alignment with inferred: an explicit candidate validates a prior
		// assistant-observed row instead of creating a duplicate.
		for i := range doc.Learnings {
			l := &doc.Learnings[i]
			if !l.Inferred || l.Archived {
				continue
			}
			if jaccardSimilarity(candidateCore, normalizeCore(l.Text)) <= types.DuplicateJaccardThreshold {
				continue
			}
			l.Inferred = false
			l.Confidence = types.ClampConfidence(max(l.Confidence+types.AlignmentConfidenceBoost, types.AlignmentConfidenceFloor))
			l.DetectionMethod = types.DetectionClaudeObservationValidated
			recordReinforcement(l, sig, now)
			result = *l
			return
		}

		// Contradiction: archive every superseded learning before
		// considering duplicates, so a stale duplicate never survives
		// alongside its replacement.
		for _, idx := range checkContradictions(sig.Text, doc.Learnings) {
			doc.Learnings[idx].Archived = true
			doc.Learnings[idx].ArchivedReason = "Superseded by: " + sig.Text
		}

		// Duplicate merge: reinforce the first non-archived match.
		for i := range doc.Learnings {
			l := &doc.Learnings[i]
			if l.Archived || l.Promoted || l.Inferred {
				continue
			}
			if !coresMatch(candidateCore, normalizeCore(l.Text), candidatePrefix, extractPrefix(l.Text)) {
				continue
			}
			reinforce(l, sig, now)
			if l.Classification.Depth() < sig.Classification.Depth() {
				l.Classification = sig.Classification
			}
			if len(sig.Text) > len(l.Text) {
				l.Text = sig.Text
			}
			result = *l
			return
		}

		// No match: create a new candidate row.
		l := types.Learning{
			ID:              newID(),
			Text:            sig.Text,
			Classification:  sig.Classification,
			Confidence:      types.ClampConfidence(sig.Confidence),
			EvidenceCount:   1,
			Scope:           sig.Scope,
			DetectionMethod: sig.DetectionMethod,
			FirstSeen:       now,
			LastReinforced:  now,
			DecayWeight:     1.0,
		}
		l.AddArea(sig.Area)
		if sig.SessionID != "" {
			l.AddSessionID(sig.SessionID)
		}
		l.AppendEvidence(types.Evidence{
			AssistantExcerpt: sig.AssistantExcerpt,
			DeveloperExcerpt: sig.DeveloperExcerpt,
			SessionID:        sig.SessionID,
			RecordedAt:       now,
		})
		doc.Learnings = append(doc.Learnings, l)
		result = l
	})

	if err != nil {
		return nil, err
	}
	return &result, nil
}

// reinforce applies the store's unconditional reinforcement algebra to an
// existing learning (see types.ReinforcementIncrement's doc comment for
// why this never special-cases same-session reinforcement).
func reinforce(l *types.Learning, sig types.Signal, now time.Time) {
	l.Confidence = types.ClampConfidence(l.Confidence + types.ReinforcementIncrement)
	recordReinforcement(l, sig, now)
}

// recordReinforcement updates the bookkeeping fields common to every
// reinforcement path (evidence, session ids, areas, timestamps) without
// touching confidence — callers that compute confidence by a different
// formula (alignment's max(current+0.25, ACTIVATION)) call this directly.
func recordReinforcement(l *types.Learning, sig types.Signal, now time.Time) {
	l.EvidenceCount++
	l.LastReinforced = now
	l.DecayWeight = 1.0
	l.AddArea(sig.Area)
	if sig.SessionID != "" {
		l.AddSessionID(sig.SessionID)
	}
	l.AppendEvidence(types.Evidence{
		AssistantExcerpt: sig.AssistantExcerpt,
		DeveloperExcerpt: sig.DeveloperExcerpt,
		SessionID:        sig.SessionID,
		RecordedAt:       now,
	})
}
