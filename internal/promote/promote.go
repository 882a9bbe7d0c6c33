// Package promote exports promotable learnings into a fenced section of
// the host's per-project instruction file, then excludes them from future
// session-start injection — the durable endpoint of a learning's
// lifecycle, per spec.md §4.1's `promoted` flag and §6's host-persistent
// promotion format.
package promote

import (
	"fmt"
	"os"
	"strings"

	"github.com/shobhit-87labs/opentell/internal/types"
)

const (
	startMarker = "<!-- opentell:start -->"
	endMarker   = "<!-- opentell:end -->"

	header     = "# What opentell Has Learned"
	disclaimer = "The following was inferred from working sessions with this developer. Treat it as a strong prior, not a hard rule."
)

// sectionOrder pairs each classification with its fixed sub-heading, in
// the display order spec.md §6 fixes: How We Build, Architecture, Quality
// Standards, Conventions, Common Gaps to Watch.
var sectionOrder = []struct {
	classification types.Classification
	heading        string
}{
	{types.ThinkingPattern, "## How We Build"},
	{types.DesignPrinciple, "## Architecture"},
	{types.QualityStandard, "## Quality Standards"},
	{types.Preference, "## Conventions"},
	{types.BehavioralGap, "## Common Gaps to Watch"},
}

// RenderSection builds the fenced section body (without the surrounding
// markers) for the given promotable learnings.
func RenderSection(learnings []types.Learning) string {
	byClass := make(map[types.Classification][]types.Learning)
	for _, l := range learnings {
		byClass[l.Classification] = append(byClass[l.Classification], l)
	}

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(disclaimer + "\n\n")
	for _, s := range sectionOrder {
		members := byClass[s.classification]
		if len(members) == 0 {
			continue
		}
		b.WriteString(s.heading + "\n")
		for _, m := range members {
			b.WriteString("- " + m.Text + "\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// WriteToFile replaces the fenced opentell section of path with a freshly
// rendered one, appending the fence if the file has none yet. The file is
// created if it doesn't exist.
func WriteToFile(path string, learnings []types.Learning) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read instruction file: %w", err)
		}
		existing = nil
	}

	fenced := startMarker + "\n" + RenderSection(learnings) + "\n" + endMarker
	updated := spliceFence(string(existing), fenced)

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write instruction file: %w", err)
	}
	return nil
}

// spliceFence replaces the region between startMarker and endMarker in
// content with fenced, or appends fenced (preceded by a blank line
// separator when content is non-empty) if no prior fence exists.
func spliceFence(content, fenced string) string {
	startIdx := strings.Index(content, startMarker)
	endIdx := strings.Index(content, endMarker)
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		trimmed := strings.TrimRight(content, "\n")
		if trimmed == "" {
			return fenced + "\n"
		}
		return trimmed + "\n\n" + fenced + "\n"
	}

	before := content[:startIdx]
	after := content[endIdx+len(endMarker):]
	after = strings.TrimPrefix(after, "\n")
	return before + fenced + "\n" + after
}
