package store

import (
	"time"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// AddObservation records an assistant self-adaptation statement. Per
// spec.md §4.1: corroborate an existing non-inferred match first (no new
// row), else reinforce a matching inferred row (capped), else create a new
// inferred row.
func (s *Store) AddObservation(sig types.Signal) (*types.Learning, error) {
	var result types.Learning
	now := time.Now().UTC()

	err := s.mutate(func(doc *types.Document) {
		core := normalizeCore(sig.Text)
		prefix := extractPrefix(sig.Text)

		for i := range doc.Learnings {
			l := &doc.Learnings[i]
			if l.Archived || l.Promoted || l.Inferred {
				continue
			}
			if !coresMatch(core, normalizeCore(l.Text), prefix, extractPrefix(l.Text)) {
				continue
			}
			l.Confidence = types.ClampConfidence(l.Confidence + types.ObservationCorroborationIncrement)
			l.ObservationCorroborations++
			l.LastReinforced = now
			result = *l
			return
		}

		for i := range doc.Learnings {
			l := &doc.Learnings[i]
			if l.Archived || !l.Inferred {
				continue
			}
			if !coresMatch(core, normalizeCore(l.Text), prefix, extractPrefix(l.Text)) {
				continue
			}
			l.Confidence = types.ClampConfidence(minFloat(l.Confidence+types.ObservationInferredIncrement, types.InferredCap))
			l.LastReinforced = now
			result = *l
			return
		}

		l := types.Learning{
			ID:              newID(),
			Text:            sig.Text,
			Classification:  sig.Classification,
			Confidence:      types.ClampConfidence(minFloat(sig.Confidence, types.InferredCap)),
			EvidenceCount:   1,
			Scope:           sig.Scope,
			DetectionMethod: sig.DetectionMethod,
			FirstSeen:       now,
			LastReinforced:  now,
			DecayWeight:     1.0,
			Inferred:        true,
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

// AcceptObservation clears the inferred flag on the learning with the
// given id, promoting it to a normal active candidate.
func (s *Store) AcceptObservation(id string) error {
	found := false
	err := s.mutate(func(doc *types.Document) {
		for i := range doc.Learnings {
			if doc.Learnings[i].ID == id {
				doc.Learnings[i].Inferred = false
				if doc.Learnings[i].Confidence < types.ActivationThreshold {
					doc.Learnings[i].Confidence = types.ActivationThreshold
				}
				doc.Learnings[i].DetectionMethod = types.DetectionClaudeObservationAccepted
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrLearningNotFound
	}
	return nil
}

// RejectObservation archives the inferred learning with the given id.
func (s *Store) RejectObservation(id string) error {
	found := false
	err := s.mutate(func(doc *types.Document) {
		for i := range doc.Learnings {
			if doc.Learnings[i].ID == id {
				doc.Learnings[i].Archived = true
				doc.Learnings[i].ArchivedReason = "Rejected by developer"
				found = true
				return
			}
		}
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrLearningNotFound
	}
	return nil
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
