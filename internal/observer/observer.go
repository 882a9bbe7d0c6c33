// Package observer looks at what Claude itself said, not what the
// developer corrected — inferring a preference from Claude's own choice
// of words ("I'll use pnpm since the project already uses it") produces a
// much weaker signal than an explicit correction, which is why every
// observation starts life inferred.
package observer

import (
	"regexp"
	"strings"

	"github.com/shobhit-87labs/opentell/internal/types"
)

const (
	observationScanLimit  = 1000
	extractMinLen         = 5
	extractMaxLen         = 150
	validatedMaxDevLen    = 80
	validatedConfidence   = 0.45
)

type observationRule struct {
	kind       string
	re         *regexp.Regexp
	confidence float64
}

// observationRules is deliberately ordered highest-confidence first; the
// caller wants the strongest available candidate when picking one for
// validation.
var observationRules = []observationRule{
	{"self_adaptation", regexp.MustCompile(`(?i)i'?ll use (.+?) (?:since|because) (?:the project|the team|you|we) (?:already )?uses? (.+?)[.\n]`), 0.25},
	{"since_project_uses", regexp.MustCompile(`(?i)using (.+?) since the project already uses (.+?)[.\n]`), 0.22},
	{"project_observation", regexp.MustCompile(`(?i)i (?:notice|see|observe) (?:the project|this codebase) uses (.+?)[.\n]`), 0.20},
	{"follow_same", regexp.MustCompile(`(?i)follow(?:ing)? the same (.+?) as (.+?)[.\n]`), 0.18},
	{"matching_existing", regexp.MustCompile(`(?i)match(?:ing)? (?:the )?existing (.+?)[.\n]`), 0.16},
	{"based_on_existing", regexp.MustCompile(`(?i)based on (?:the )?existing (.+?)[.\n]`), 0.15},
}

// denyList filters out extractions that are too generic to be worth
// storing as a preference.
var denyList = []string{"code", "pattern", "style", "convention", "approach", "way"}

var architectureVocab = regexp.MustCompile(`(?i)\b(layer|module|separation|concern|architecture|component|boundary|interface)\b`)
var qualityVocab = regexp.MustCompile(`(?i)\b(test|error handling|logging|validation|accessib)\b`)
var toolVocab = regexp.MustCompile(`(?i)\b(pnpm|npm|yarn|bun|jest|vitest|mocha|cypress|playwright|eslint|prettier|react|vue|svelte|postgres|mysql|mongodb|sqlite|prisma|drizzle|tailwind)\b`)

var rejectionRe = regexp.MustCompile(`(?i)\b(no|nope|not quite|actually|instead|rather than)\b`)
var affirmationRe = regexp.MustCompile(`(?i)^(yes|yeah|exactly|correct|right|good catch|that'?s right|perfect|nice)\b`)

// candidate is an observation extracted from assistant text, still missing
// area/session provenance the caller must attach.
type candidate struct {
	text       string
	confidence float64
	kind       string
}

// DetectObservations scans the first observationScanLimit characters of
// assistantText against the fixed extractor table and returns every
// surviving candidate as a Signal, most confident first.
func DetectObservations(assistantText string) []types.Signal {
	scan := assistantText
	if len(scan) > observationScanLimit {
		scan = scan[:observationScanLimit]
	}

	var candidates []candidate
	for _, rule := range observationRules {
		m := rule.re.FindStringSubmatch(scan)
		if m == nil || len(m) < 2 {
			continue
		}
		text := strings.TrimSpace(m[1])
		if isDenied(text) {
			continue
		}
		c := candidate{text: text, confidence: rule.confidence, kind: rule.kind}
		if n := len(renderObservation(c)); n < extractMinLen || n > extractMaxLen {
			continue
		}
		candidates = append(candidates, c)
	}

	signals := make([]types.Signal, 0, len(candidates))
	for _, c := range candidates {
		signals = append(signals, types.Signal{
			Text:            renderObservation(c),
			Confidence:      c.confidence,
			Classification:  classify(c.text),
			Scope:           types.ScopeGlobal,
			Area:            areaFor(c.text),
			DetectionMethod: types.DetectionClaudeObservation,
		})
	}
	return signals
}

// DetectValidated returns the highest-confidence observation from
// assistantText, promoted to validatedConfidence, iff developerText is a
// short, unambiguous affirmation of it.
func DetectValidated(assistantText, developerText string) (types.Signal, bool) {
	dev := strings.TrimSpace(developerText)
	if len(dev) > validatedMaxDevLen {
		return types.Signal{}, false
	}
	if rejectionRe.MatchString(dev) {
		return types.Signal{}, false
	}
	if !affirmationRe.MatchString(dev) {
		return types.Signal{}, false
	}

	observations := DetectObservations(assistantText)
	if len(observations) == 0 {
		return types.Signal{}, false
	}

	best := observations[0]
	for _, sig := range observations[1:] {
		if sig.Confidence > best.Confidence {
			best = sig
		}
	}
	best.Confidence = validatedConfidence
	best.DetectionMethod = types.DetectionValidatedObservation
	return best, true
}

func isDenied(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range denyList {
		if lower == phrase {
			return true
		}
	}
	return false
}

// classify picks a classification by vocabulary present in the extracted
// text, falling back to PREFERENCE for anything not clearly architectural
// or quality-related.
func classify(text string) types.Classification {
	switch {
	case toolVocab.MatchString(text):
		return types.Preference
	case architectureVocab.MatchString(text):
		return types.DesignPrinciple
	case qualityVocab.MatchString(text):
		return types.QualityStandard
	default:
		return types.Preference
	}
}

func areaFor(text string) types.Area {
	switch {
	case architectureVocab.MatchString(text):
		return types.AreaArchitecture
	case qualityVocab.MatchString(text):
		return types.AreaTesting
	default:
		return types.AreaGeneral
	}
}

func renderObservation(c candidate) string {
	return "Uses " + c.text
}
