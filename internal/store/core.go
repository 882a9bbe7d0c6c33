package store

import "github.com/shobhit-87labs/opentell/internal/types"

// The store package reasons about learning text using the same
// normalization and similarity primitives the pattern detector uses to
// dedupe its own candidates; both live in internal/types so neither package
// imports the other.
type prefixKind = types.PrefixKind

const (
	prefixUses    = types.PrefixUses
	prefixAvoids  = types.PrefixAvoids
	prefixPrefers = types.PrefixPrefers
	prefixOther   = types.PrefixOther
)

func extractPrefix(text string) prefixKind { return types.ExtractPrefix(text) }

func prefixesContradict(a, b prefixKind) bool { return types.PrefixesContradict(a, b) }

func normalizeCore(text string) string { return types.NormalizeCore(text) }

func jaccardSimilarity(a, b string) float64 { return types.JaccardSimilarity(a, b) }

func coresMatch(coreA, coreB string, prefixA, prefixB prefixKind) bool {
	return types.CoresMatch(coreA, coreB, prefixA, prefixB)
}

func containsWord(s, word string) bool { return types.ContainsWord(s, word) }
