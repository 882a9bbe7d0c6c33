package types

import (
	"regexp"
	"strings"
)

// PrefixKind is one of the conventional lead-ins the duplicate and
// contradiction rules reason about.
type PrefixKind string

const (
	PrefixUses    PrefixKind = "uses"
	PrefixAvoids  PrefixKind = "avoids"
	PrefixPrefers PrefixKind = "prefers"
	PrefixOther   PrefixKind = "other"
)

// leadingPrefixes lists the conventional lead-ins stripped when computing a
// learning's normalized core; only the first matching entry is stripped.
// Negated forms such as "prefers not" are not listed, so "Prefers not X"
// keeps "not x" as its core.
var leadingPrefixes = []string{
	"always uses", "always use", "never uses", "never use",
	"uses", "use", "avoids", "avoid", "prefers", "prefer",
}

var emDashSplit = regexp.MustCompile(`\s*[—–]\s*`)

var wordRe = regexp.MustCompile(`[a-z0-9]+`)

// ExtractPrefix classifies text's leading verb per the four prefix kinds.
func ExtractPrefix(text string) PrefixKind {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(lower, "uses ") || strings.HasPrefix(lower, "use "):
		return PrefixUses
	case strings.HasPrefix(lower, "avoids ") || strings.HasPrefix(lower, "avoid "):
		return PrefixAvoids
	case strings.HasPrefix(lower, "prefers ") || strings.HasPrefix(lower, "prefer "):
		return PrefixPrefers
	default:
		return PrefixOther
	}
}

// PrefixesContradict reports whether a and b are opposing lead-ins.
// avoids↔uses is the only hard contradiction; prefers/other never contradict
// on prefix alone.
func PrefixesContradict(a, b PrefixKind) bool {
	return (a == PrefixAvoids && b == PrefixUses) || (a == PrefixUses && b == PrefixAvoids)
}

// NormalizeCore strips a leading conventional prefix and any tail
// introduced by an em-dash, lowercases, and trims — yielding the string
// duplicate/contradiction detection compares.
func NormalizeCore(text string) string {
	core := strings.ToLower(strings.TrimSpace(text))
	core = emDashSplit.Split(core, 2)[0]
	core = strings.TrimSpace(core)

	for _, p := range leadingPrefixes {
		if strings.HasPrefix(core, p+" ") {
			core = strings.TrimSpace(strings.TrimPrefix(core, p+" "))
			break
		}
	}
	return core
}

// TokenizeWords lowercases and splits s into its alphanumeric word set.
func TokenizeWords(s string) map[string]struct{} {
	words := wordRe.FindAllString(strings.ToLower(s), -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// JaccardSimilarity returns |A∩B| / |A∪B| over a's and b's word sets.
func JaccardSimilarity(a, b string) float64 {
	wa := TokenizeWords(a)
	wb := TokenizeWords(b)
	if len(wa) == 0 && len(wb) == 0 {
		return 1
	}
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	intersection := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			intersection++
		}
	}
	union := len(wa) + len(wb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// CoresMatch implements the duplicate predicate: identical cores, or
// Jaccard similarity above the threshold, with non-contradicting prefixes.
func CoresMatch(coreA, coreB string, prefixA, prefixB PrefixKind) bool {
	if PrefixesContradict(prefixA, prefixB) {
		return false
	}
	return coreA == coreB || JaccardSimilarity(coreA, coreB) > DuplicateJaccardThreshold
}

// ContainsWord reports whether word appears as a whole word within s.
func ContainsWord(s, word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	return re.MatchString(strings.ToLower(s))
}
