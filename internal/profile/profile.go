// Package profile synthesizes a narrative brief of the developer from all
// active learnings, refreshed only when the active set has materially
// changed or enough sessions have passed — synthesis is a network call
// and spec.md §5 keeps those off the session-start/turn-stop critical
// path.
package profile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shobhit-87labs/opentell/internal/classifier"
	"github.com/shobhit-87labs/opentell/internal/types"
)

// generator is the transport seam profile needs — identical shape to the
// consolidator's, kept separate so neither package depends on the other.
type generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, classifier.Usage, error)
}

// Checksum hashes {id:confidence:text} across active learnings, sorted by
// id so the result is stable regardless of slice order.
func Checksum(active []types.Learning) string {
	sorted := make([]types.Learning, len(active))
	copy(sorted, active)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := sha256.New()
	for _, l := range sorted {
		fmt.Fprintf(h, "%s:%.4f:%s\n", l.ID, l.Confidence, l.Text)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// NeedsUpdate reports whether the profile should be regenerated: it
// doesn't exist yet, the checksum of the active set has drifted, or
// ProfileSessionGap sessions have elapsed since the last synthesis.
// Requires ProfileMinActive active learnings regardless of the other
// conditions.
func NeedsUpdate(active []types.Learning, existing *types.Profile, currentSession int) bool {
	if len(active) < types.ProfileMinActive {
		return false
	}
	if existing == nil || existing.Checksum == "" {
		return true
	}
	if Checksum(active) != existing.Checksum {
		return true
	}
	return currentSession-existing.SessionCount >= types.ProfileSessionGap
}

// Synthesize submits the active learning set, grouped by classification in
// depth order, to the language model and returns the resulting profile.
func Synthesize(ctx context.Context, gen generator, active []types.Learning, sessionCount int) (types.Profile, error) {
	sections := formatSections(active)
	text, _, err := gen.Generate(ctx, classifier.FormatProfileSystemPrompt(), classifier.FormatProfilePrompt(sections))
	if err != nil {
		return types.Profile{}, fmt.Errorf("synthesize profile: %w", err)
	}
	narrative := strings.TrimSpace(text)
	if narrative == "" {
		return types.Profile{}, fmt.Errorf("synthesize profile: empty narrative")
	}

	return types.Profile{
		Text:          narrative,
		GeneratedAt:   time.Now().UTC(),
		LearningCount: len(active),
		SessionCount:  sessionCount,
		Checksum:      Checksum(active),
	}, nil
}

// formatSections groups learnings by classification in depth order (5.4.9)
// and renders each group as a heading followed by its member texts.
func formatSections(active []types.Learning) string {
	byClass := make(map[types.Classification][]types.Learning)
	for _, l := range active {
		byClass[l.Classification] = append(byClass[l.Classification], l)
	}

	var b strings.Builder
	for _, c := range types.DepthOrder() {
		members := byClass[c]
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", c)
		for _, m := range members {
			fmt.Fprintf(&b, "- %s\n", m.Text)
		}
	}
	return b.String()
}
