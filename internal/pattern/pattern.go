// Package pattern implements the deterministic, regex-driven half of the
// detection pipeline: it turns an (assistant, developer) pair into zero or
// more candidate signals without ever calling out to a model.
package pattern

import (
	"fmt"
	"strings"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// Result is the outcome of running the pattern families over one pair.
type Result struct {
	Detected bool
	Signals  []types.Signal
	Noise    bool
}

// Detect runs every pattern family's rule table against the developer side
// of pair and returns the surviving, deduplicated signals. A pair that
// trips the noise filter short-circuits before any family is tried.
func Detect(pair types.Pair) Result {
	text := strings.TrimSpace(pair.DeveloperText)
	if text == "" || isNoise(text) {
		return Result{Noise: true}
	}

	var candidates []types.Signal
	for _, fam := range families {
		for _, r := range fam.rules {
			m := r.re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			candidates = append(candidates, types.Signal{
				Text:             renderTemplate(r, m),
				Confidence:       fam.confidence,
				Classification:   fam.classification,
				Scope:            types.ScopeGlobal,
				Area:             fam.area,
				DetectionMethod:  types.DetectionRegex,
				AssistantExcerpt: pair.AssistantText,
				DeveloperExcerpt: pair.DeveloperText,
			})
			break // one hit per family per pair is enough signal
		}
	}

	signals := dedupe(candidates)
	return Result{Detected: len(signals) > 0, Signals: signals}
}

// renderTemplate splices a rule's capture group into its template. Rules
// with group 0 use the template verbatim (either it has no placeholder, or
// it addresses two groups directly via m[1]/m[2]).
func renderTemplate(r rule, m []string) string {
	switch {
	case r.group > 0 && r.group < len(m):
		return fmt.Sprintf(r.template, strings.TrimSpace(strings.TrimRight(m[r.group], ".!")))
	case strings.Contains(r.template, "%s") && len(m) > 2:
		return fmt.Sprintf(r.template, strings.TrimSpace(m[1]), strings.TrimSpace(m[2]))
	default:
		return r.template
	}
}

// dedupe groups signals by normalized core text and keeps, per group, the
// highest-confidence signal, breaking ties toward the longer text.
func dedupe(signals []types.Signal) []types.Signal {
	if len(signals) == 0 {
		return nil
	}

	type group struct {
		best types.Signal
		core string
	}
	var groups []group

	for _, sig := range signals {
		core := types.NormalizeCore(sig.Text)
		merged := false
		for i := range groups {
			if types.JaccardSimilarity(core, groups[i].core) <= types.DuplicateJaccardThreshold {
				continue
			}
			cur := groups[i].best
			if sig.Confidence > cur.Confidence ||
				(sig.Confidence == cur.Confidence && len(sig.Text) > len(cur.Text)) {
				groups[i].best = sig
			}
			merged = true
			break
		}
		if !merged {
			groups = append(groups, group{best: sig, core: core})
		}
	}

	out := make([]types.Signal, 0, len(groups))
	for _, g := range groups {
		out = append(out, g.best)
	}
	return out
}
