package store

import (
	"regexp"
	"strings"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// toolCategory maps a canonical tool name to the family it belongs to.
// Two learnings naming different tools in the same family contradict.
var toolCategory = map[string]string{
	"npm": "package_manager", "pnpm": "package_manager", "yarn": "package_manager", "bun": "package_manager",
	"jest": "test_framework", "vitest": "test_framework", "mocha": "test_framework", "ava": "test_framework",
	"cypress": "e2e_testing", "playwright": "e2e_testing", "puppeteer": "e2e_testing",
	"eslint": "linter", "biome": "linter", "golangci-lint": "linter",
	"prettier": "formatter", "gofmt": "formatter", "black": "formatter",
	"react": "ui_framework", "vue": "ui_framework", "svelte": "ui_framework", "angular": "ui_framework",
	"next": "meta_framework", "nuxt": "meta_framework", "remix": "meta_framework", "sveltekit": "meta_framework",
	"express": "server_framework", "fastify": "server_framework", "koa": "server_framework", "gin": "server_framework",
	"lambda": "backend_service", "cloud functions": "backend_service", "supabase": "backend_service",
	"postgres": "database", "mysql": "database", "mongodb": "database", "sqlite": "database",
	"prisma": "orm", "drizzle": "orm", "typeorm": "orm", "gorm": "orm",
	"tailwind": "css_framework", "bootstrap": "css_framework", "styled-components": "css_framework",
}

// stylePair is one axis of opposing style preferences.
type stylePair struct {
	a, b *regexp.Regexp
}

var styleOpposites = []stylePair{
	{regexp.MustCompile(`(?i)\bconcise\b`), regexp.MustCompile(`(?i)\bverbose\b`)},
	{regexp.MustCompile(`(?i)code[- ]first`), regexp.MustCompile(`(?i)explain[- ]more`)},
	{regexp.MustCompile(`(?i)minimal[- ]comments?`), regexp.MustCompile(`(?i)more[- ]comments?`)},
	{regexp.MustCompile(`(?i)\bfunctional\b`), regexp.MustCompile(`(?i)\bclass(es)?\b`)},
	{regexp.MustCompile(`(?i)named[- ]export`), regexp.MustCompile(`(?i)default[- ]export`)},
	{regexp.MustCompile(`(?i)strict[- ]typing`), regexp.MustCompile(`(?i)no[- ]typing`)},
	{regexp.MustCompile(`(?i)\bsimplicity\b`), regexp.MustCompile(`(?i)future[- ]proofing`)},
	{regexp.MustCompile(`(?i)prototype[- ]first`), regexp.MustCompile(`(?i)plan[- ]first`)},
}

var insteadOfRe = regexp.MustCompile(`(?i)\b([\w.\- ]+?)\s+instead of\s+([\w.\- ]+)`)

// findToolInCategory returns the first known tool name appearing as a
// whole word in text, and its category, or ("", "") if none match.
func findToolInCategory(text string) (tool, category string) {
	lower := strings.ToLower(text)
	for name, cat := range toolCategory {
		if containsWord(lower, name) {
			return name, cat
		}
	}
	return "", ""
}

// checkContradictions scans non-archived learnings against candidateText
// and returns the indices of every learning it supersedes, per spec.md
// §4.1's four contradiction rules.
func checkContradictions(candidateText string, learnings []types.Learning) []int {
	var hits []int

	candidateCore := normalizeCore(candidateText)
	candidatePrefix := extractPrefix(candidateText)
	candidateTool, candidateCategory := findToolInCategory(candidateText)

	var instead string
	if m := insteadOfRe.FindStringSubmatch(candidateText); m != nil {
		instead = strings.TrimSpace(m[2])
	}

	for i := range learnings {
		l := &learnings[i]
		if l.Archived {
			continue
		}
		existingCore := normalizeCore(l.Text)

		// (1) "X instead of Y" where Y appears in an existing core.
		if instead != "" && containsWord(existingCore, instead) {
			hits = append(hits, i)
			continue
		}

		// (2) same tool category, different tool.
		if candidateCategory != "" {
			if existingTool, existingCategory := findToolInCategory(l.Text); existingCategory == candidateCategory && existingTool != candidateTool {
				hits = append(hits, i)
				continue
			}
		}

		// (3) style opposites.
		if styleOpposes(candidateText, l.Text) {
			hits = append(hits, i)
			continue
		}

		// (4) avoids-X matches uses-X core.
		if candidatePrefix == prefixAvoids && extractPrefix(l.Text) == prefixUses &&
			jaccardSimilarity(candidateCore, existingCore) > types.AvoidsUsesSimilarityThreshold {
			hits = append(hits, i)
			continue
		}
		if candidatePrefix == prefixUses && extractPrefix(l.Text) == prefixAvoids &&
			jaccardSimilarity(candidateCore, existingCore) > types.AvoidsUsesSimilarityThreshold {
			hits = append(hits, i)
			continue
		}
	}

	return hits
}

// styleOpposes reports whether a and b fall on opposite sides of any fixed
// style axis.
func styleOpposes(a, b string) bool {
	for _, pair := range styleOpposites {
		if (pair.a.MatchString(a) && pair.b.MatchString(b)) || (pair.b.MatchString(a) && pair.a.MatchString(b)) {
			return true
		}
	}
	return false
}
