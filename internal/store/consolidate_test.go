package store

import (
	"testing"

	"github.com/shobhit-87labs/opentell/internal/types"
)

func TestAddConsolidatedLinksMembers(t *testing.T) {
	s := newTestStore(t)
	a, err := s.AddCandidate(types.Signal{
		Text: "Writes small, single-purpose functions", Confidence: 0.5, Classification: types.Preference,
		Scope: types.ScopeGlobal, Area: types.AreaBackend, DetectionMethod: types.DetectionRegex,
	})
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.AddCandidate(types.Signal{
		Text: "Prefers highly composable helpers over monoliths", Confidence: 0.6, Classification: types.Preference,
		Scope: types.ScopeGlobal, Area: types.AreaBackend, DetectionMethod: types.DetectionRegex,
	})
	if err != nil {
		t.Fatal(err)
	}

	synthesized := types.Learning{
		Text:                  "Breaks problems into small, independently testable pieces.",
		Classification:        types.ThinkingPattern,
		Confidence:            0.6,
		Scope:                 types.ScopeGlobal,
		Area:                  types.AreaBackend,
		DetectionMethod:       types.DetectionConsolidation,
		ConsolidatedFromGroup: "composability",
	}
	result, err := s.AddConsolidated(synthesized, []string{a.ID, b.ID})
	if err != nil {
		t.Fatal(err)
	}
	if result.ID == "" {
		t.Fatal("expected a fresh id assigned to the consolidated learning")
	}

	all := s.GetAll()
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}
	for _, l := range all {
		if l.ID == a.ID || l.ID == b.ID {
			if l.ConsolidatedInto != result.ID {
				t.Errorf("member %q ConsolidatedInto = %q, want %q", l.Text, l.ConsolidatedInto, result.ID)
			}
		}
	}
}

func TestAddConsolidatedSkipsMissingMember(t *testing.T) {
	s := newTestStore(t)
	synthesized := types.Learning{
		Text: "Some instinct", Classification: types.ThinkingPattern, Confidence: 0.6,
		Scope: types.ScopeGlobal, Area: types.AreaGeneral, DetectionMethod: types.DetectionConsolidation,
	}
	if _, err := s.AddConsolidated(synthesized, []string{"does-not-exist"}); err != nil {
		t.Fatal(err)
	}
	if len(s.GetAll()) != 1 {
		t.Fatalf("len(all) = %d, want 1", len(s.GetAll()))
	}
}
