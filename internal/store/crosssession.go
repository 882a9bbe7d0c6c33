package store

import "github.com/shobhit-87labs/opentell/internal/types"

// ApplyCrossSession runs the boost/upgrade-1/upgrade-2 ladder over every
// non-archived learning. analyze receives the current learning set and
// returns it with any bookkeeping fields mutated in place; the store
// package depends on internal/crosssession only through this function
// value so it never imports a package that would need to import it back.
func (s *Store) ApplyCrossSession(analyze func([]types.Learning) []types.Learning) error {
	return s.mutate(func(doc *types.Document) {
		var active []int
		var subset []types.Learning
		for i, l := range doc.Learnings {
			if l.Archived {
				continue
			}
			active = append(active, i)
			subset = append(subset, l)
		}
		analyzed := analyze(subset)
		for j, idx := range active {
			doc.Learnings[idx] = analyzed[j]
		}
	})
}
