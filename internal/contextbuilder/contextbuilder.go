// Package contextbuilder assembles the brief injected at session-start:
// either a short profile-mode brief (a narrative paragraph plus a list of
// active preferences) or, when no profile exists yet or the active set is
// small, a structured-mode brief organized by classification depth.
package contextbuilder

import (
	"fmt"
	"strings"

	"github.com/shobhit-87labs/opentell/internal/types"
)

var classificationHeading = map[types.Classification]string{
	types.ThinkingPattern: "## Thinking Patterns",
	types.DesignPrinciple: "## Design Principles",
	types.QualityStandard: "## Quality Standards",
	types.BehavioralGap:   "## Behavioral Gaps",
}

// Build assembles the session-start injection text from the active
// learning set and, if one exists, the synthesized profile.
func Build(active []types.Learning, profile *types.Profile) string {
	filtered := applyAreaFilter(active)

	if len(filtered) >= types.ContextProfileModeMinActive && profile != nil && profile.Text != "" {
		return buildProfileMode(filtered, profile)
	}
	return buildStructuredMode(filtered)
}

// buildProfileMode renders the header, the profile paragraph, then a flat
// list of active preferences (the depth-ordered sections are already
// folded into the narrative, so only the concrete PREFERENCE rows are
// listed separately).
func buildProfileMode(active []types.Learning, profile *types.Profile) string {
	var b strings.Builder
	b.WriteString("# What I Know About You\n\n")
	b.WriteString(profile.Text)
	b.WriteString("\n\n")

	var prefs []string
	for _, l := range active {
		if l.Classification == types.Preference {
			prefs = append(prefs, l.Text)
		}
	}
	writeBulletSection(&b, "## Preferences", prefs)
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// buildStructuredMode renders one section per classification in depth
// order, then splits PREFERENCE into global vs. scoped subsections.
func buildStructuredMode(active []types.Learning) string {
	var b strings.Builder
	b.WriteString("# What I Know About You\n\n")

	byClass := make(map[types.Classification][]types.Learning)
	for _, l := range active {
		byClass[l.Classification] = append(byClass[l.Classification], l)
	}

	for _, c := range types.DepthOrder() {
		if c == types.Preference {
			continue
		}
		heading, ok := classificationHeading[c]
		if !ok {
			continue
		}
		writeBulletSection(&b, heading, textsOf(byClass[c]))
	}

	var global, scoped []string
	for _, l := range byClass[types.Preference] {
		if l.Scope == types.ScopeGlobal {
			global = append(global, l.Text)
		} else {
			scoped = append(scoped, fmt.Sprintf("%s (%s)", l.Text, l.Scope))
		}
	}
	writeBulletSection(&b, "## Preferences", global)
	writeBulletSection(&b, "## Project-Specific Preferences", scoped)

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func textsOf(learnings []types.Learning) []string {
	out := make([]string, len(learnings))
	for i, l := range learnings {
		out[i] = l.Text
	}
	return out
}

// writeBulletSection writes an optional section with bullet items, doing
// nothing when items is empty.
func writeBulletSection(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(heading + "\n")
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n")
}

// applyAreaFilter thins the active set once it grows large. THINKING_PATTERN,
// DESIGN_PRINCIPLE, and global-scope PREFERENCE always pass and define the
// active-area set (plus "general", always included); everything else
// passes only if its area set intersects that set, per spec.md §4.10.
func applyAreaFilter(active []types.Learning) []types.Learning {
	if len(active) < types.ContextAreaFilterMinActive {
		return active
	}

	alwaysPass := func(l types.Learning) bool {
		return l.Classification == types.ThinkingPattern ||
			l.Classification == types.DesignPrinciple ||
			(l.Classification == types.Preference && l.Scope == types.ScopeGlobal)
	}

	activeAreas := map[types.Area]bool{types.AreaGeneral: true}
	for _, l := range active {
		if !alwaysPass(l) {
			continue
		}
		activeAreas[l.Area] = true
		for _, a := range l.Areas {
			activeAreas[a] = true
		}
	}

	var filtered []types.Learning
	for _, l := range active {
		if alwaysPass(l) || intersectsArea(l, activeAreas) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

func intersectsArea(l types.Learning, activeAreas map[types.Area]bool) bool {
	if activeAreas[l.Area] {
		return true
	}
	for _, a := range l.Areas {
		if activeAreas[a] {
			return true
		}
	}
	return false
}
