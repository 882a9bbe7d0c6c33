package store

import (
	"time"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// AddConsolidated persists a synthesized learning produced by the
// consolidator and links every member learning's consolidated_into back
// to it (I5). Members are located by id; a member that no longer exists
// (removed between FindClusters and Consolidate) is skipped rather than
// failing the whole insert.
func (s *Store) AddConsolidated(learning types.Learning, memberIDs []string) (*types.Learning, error) {
	var result types.Learning
	now := time.Now().UTC()

	err := s.mutate(func(doc *types.Document) {
		learning.ID = newID()
		if learning.FirstSeen.IsZero() {
			learning.FirstSeen = now
		}
		if learning.LastReinforced.IsZero() {
			learning.LastReinforced = now
		}
		if learning.DecayWeight == 0 {
			learning.DecayWeight = 1.0
		}
		doc.Learnings = append(doc.Learnings, learning)

		memberSet := make(map[string]bool, len(memberIDs))
		for _, id := range memberIDs {
			memberSet[id] = true
		}
		for i := range doc.Learnings {
			if memberSet[doc.Learnings[i].ID] {
				doc.Learnings[i].ConsolidatedInto = learning.ID
			}
		}

		result = learning
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
