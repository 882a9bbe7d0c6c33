// Package consolidator clusters related learnings by a fixed table of
// affinity keywords and, once a cluster is large enough, submits it to a
// language model for synthesis into one deeper insight — a design
// instinct that explains the cluster's members rather than restating any
// one of them.
package consolidator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shobhit-87labs/opentell/internal/classifier"
	"github.com/shobhit-87labs/opentell/internal/types"
)

// Group is one row of the fixed affinity table: an id and the keywords
// whose presence in a learning's lowercased text assigns it to the group.
type Group struct {
	ID       string
	Keywords []string
}

// groups is the fixed affinity table, per spec.md §4.8. Order is stable so
// findClusters output is deterministic across runs.
var groups = []Group{
	{ID: "composability", Keywords: []string{"compos", "reusable", "modular", "small function", "single-purpose"}},
	{ID: "user_empathy", Keywords: []string{"user's perspective", "user experience", "empathy", "accessib", "usability"}},
	{ID: "defensive_design", Keywords: []string{"error handling", "edge case", "validation", "defensive", "fail"}},
	{ID: "data_architecture", Keywords: []string{"schema", "data model", "database", "migration", "normaliz"}},
	{ID: "shipping_standards", Keywords: []string{"test", "ci", "deploy", "release", "coverage"}},
	{ID: "simplicity_pragmatism", Keywords: []string{"simple", "pragmatic", "minimal", "avoid over-engineering", "yagni"}},
	{ID: "system_thinking", Keywords: []string{"scale", "architecture", "separation of concerns", "system", "boundary"}},
	{ID: "code_clarity", Keywords: []string{"readable", "clarity", "naming", "comment", "clean"}},
}

// Cluster is a candidate affinity group ready for synthesis.
type Cluster struct {
	Group    Group
	Members  []types.Learning
}

// FindClusters groups active learnings by affinity keyword. A group is
// emitted only if it reaches ConsolidationMinCluster members and no
// existing learning already carries consolidated_from_group for that
// group id (a group consolidates at most once).
func FindClusters(active []types.Learning) []Cluster {
	consolidated := make(map[string]bool)
	for _, l := range active {
		if l.ConsolidatedFromGroup != "" {
			consolidated[l.ConsolidatedFromGroup] = true
		}
	}

	var clusters []Cluster
	for _, g := range groups {
		if consolidated[g.ID] {
			continue
		}
		var members []types.Learning
		for _, l := range active {
			if l.Archived || l.Promoted || l.Confidence < types.ActivationThreshold {
				continue
			}
			if l.ConsolidatedInto != "" {
				continue
			}
			if matchesGroup(l.Text, g) {
				members = append(members, l)
			}
		}
		if len(members) >= types.ConsolidationMinCluster {
			clusters = append(clusters, Cluster{Group: g, Members: members})
		}
	}
	return clusters
}

func matchesGroup(text string, g Group) bool {
	lower := strings.ToLower(text)
	for _, kw := range g.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ShouldConsolidate reports whether a consolidation pass is due: at least
// ConsolidationMinActive active learnings, no prior run or at least
// ConsolidationSessionGap sessions since the last one, and at least one
// cluster available.
func ShouldConsolidate(active []types.Learning, meta types.Meta, currentSession int) bool {
	if len(active) < types.ConsolidationMinActive {
		return false
	}
	if !meta.LastConsolidation.IsZero() {
		if currentSession-meta.ConsolidationSession < types.ConsolidationSessionGap {
			return false
		}
	}
	return len(FindClusters(active)) > 0
}

// generator is the seam consolidator needs from the shared LLM transport —
// narrow enough that tests substitute a fake without touching the real
// classifier client.
type generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, classifier.Usage, error)
}

// Synthesized is a cluster's consolidation result, ready to be persisted
// by the store as a new Learning linked back to its members.
type Synthesized struct {
	Learning  types.Learning
	MemberIDs []string
}

// Consolidate submits a cluster's member texts to the language model and
// builds the resulting synthesized Learning per spec.md §4.8's formula.
// It never archives or mutates the members — the caller links them via
// consolidated_into once the new learning has an id.
func Consolidate(ctx context.Context, gen generator, cluster Cluster) (Synthesized, error) {
	texts := make([]string, len(cluster.Members))
	memberIDs := make([]string, len(cluster.Members))
	var confidenceSum float64
	var evidenceSum int
	area := types.AreaGeneral
	if len(cluster.Members) > 0 {
		area = cluster.Members[0].Area
	}
	for i, m := range cluster.Members {
		texts[i] = m.Text
		memberIDs[i] = m.ID
		confidenceSum += m.Confidence
		evidenceSum += m.EvidenceCount
	}

	prompt := classifier.FormatConsolidationPrompt(texts)
	text, _, err := gen.Generate(ctx, classifier.FormatConsolidationSystemPrompt(), prompt)
	if err != nil {
		return Synthesized{}, fmt.Errorf("consolidate cluster %s: %w", cluster.Group.ID, err)
	}
	insight := strings.TrimSpace(text)
	if insight == "" {
		return Synthesized{}, fmt.Errorf("consolidate cluster %s: empty synthesis", cluster.Group.ID)
	}

	avgConfidence := confidenceSum / float64(len(cluster.Members))
	confidence := avgConfidence + types.ConsolidationConfidenceBoost
	if confidence > types.ConsolidationConfidenceCeiling {
		confidence = types.ConsolidationConfidenceCeiling
	}

	now := time.Now().UTC()
	learning := types.Learning{
		Text:                  insight,
		Classification:        types.ThinkingPattern,
		Confidence:            confidence,
		EvidenceCount:         evidenceSum,
		Scope:                 types.ScopeGlobal,
		Area:                  area,
		DetectionMethod:       types.DetectionConsolidation,
		FirstSeen:             now,
		LastReinforced:        now,
		DecayWeight:           1.0,
		ConsolidatedFromGroup: cluster.Group.ID,
		ConsolidatedFromIDs:   memberIDs,
	}
	return Synthesized{Learning: learning, MemberIDs: memberIDs}, nil
}
