package pattern

import (
	"regexp"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// rule is one row of a pattern family's regex table: a matcher, an
// optional capture group to splice into template, and the template used
// to render the learning's text.
type rule struct {
	re       *regexp.Regexp
	template string // "%s" is replaced by the captured group, if group > 0
	group    int
}

// family groups rules that share a classification, area, and starting
// confidence — the "fixed table of regex + extractor + classification +
// area + starting confidence" spec.md §4.3 and §9 describe.
type family struct {
	name           string
	classification types.Classification
	area           types.Area
	confidence     float64
	rules          []rule
}

var toolNameRe = `(pnpm|npm|yarn|bun|jest|vitest|mocha|cypress|playwright|eslint|biome|prettier|react|vue|svelte|next|nuxt|express|fastify|postgres|mysql|mongodb|sqlite|prisma|drizzle|tailwind)`

var families = []family{
	{
		name: "corrections", classification: types.Preference, area: types.AreaGeneral, confidence: 0.35,
		rules: []rule{
			{regexp.MustCompile(`(?i)^no,?\s+use\s+(.+)$`), "Prefers %s", 1},
			{regexp.MustCompile(`(?i)^actually,?\s+use\s+(.+)$`), "Prefers %s", 1},
			{regexp.MustCompile(`(?i)^use\s+(.+?)\s+instead$`), "Prefers %s", 1},
			{regexp.MustCompile(`(?i)^(.+?)\s+not\s+(.+)$`), "Prefers %s", 1},
			{regexp.MustCompile(`(?i)^don'?t\s+use\s+(.+)$`), "Avoids %s", 1},
			{regexp.MustCompile(`(?i)^change\s+to\s+(.+)$`), "Prefers %s", 1},
			{regexp.MustCompile(`(?i)^should\s+be\s+(.+)$`), "Prefers %s", 1},
		},
	},
	{
		name: "conventions", classification: types.Preference, area: types.AreaGeneral, confidence: 0.35,
		rules: []rule{
			{regexp.MustCompile(`(?i)\b(?:we|our team)\s+use\s+(.+)`), "Convention: uses %s", 1},
			{regexp.MustCompile(`(?i)\bi\s+(?:always|usually)\s+(.+)`), "Convention: %s", 1},
			{regexp.MustCompile(`(?i)\bin this project,?\s+(.+)`), "Convention: %s", 1},
			{regexp.MustCompile(`(?i)\bput\s+(.+?)\s+in\s+(.+)`), "Convention: put %s in %s", 0},
			{regexp.MustCompile(`(?i)\bfollow(?:s)? convention\s+(.+)`), "Convention: %s", 1},
		},
	},
	{
		name: "style", classification: types.Preference, area: types.AreaGeneral, confidence: 0.35,
		rules: []rule{
			{regexp.MustCompile(`(?i)\bbe more concise\b`), "Prefers concise responses", 0},
			{regexp.MustCompile(`(?i)\bcode[- ]first\b`), "Prefers code-first responses", 0},
			{regexp.MustCompile(`(?i)\b(more explanation|explain more)\b`), "Prefers more explanation", 0},
			{regexp.MustCompile(`(?i)\bno comments\b`), "Prefers minimal comments", 0},
			{regexp.MustCompile(`(?i)\bmore comments\b`), "Prefers more comments", 0},
			{regexp.MustCompile(`(?i)\bstrict typ(e|ing)\b`), "Prefers strict typing", 0},
		},
	},
	{
		name: "thinking", classification: types.ThinkingPattern, area: types.AreaGeneral, confidence: 0.38,
		rules: []rule{
			{regexp.MustCompile(`(?i)\bkeep it simple\b`), "Values keeping things simple", 0},
			{regexp.MustCompile(`(?i)\bthink about scale\b`), "Thinks about scale early", 0},
			{regexp.MustCompile(`(?i)\bprototype first\b`), "Prefers prototyping before formalizing", 0},
			{regexp.MustCompile(`(?i)\bdata[- ]first\b`), "Thinks in terms of data shape first", 0},
			{regexp.MustCompile(`(?i)\buser'?s? perspective\b`), "Reasons from the user's perspective", 0},
		},
	},
	{
		name: "design", classification: types.DesignPrinciple, area: types.AreaArchitecture, confidence: 0.38,
		rules: []rule{
			{regexp.MustCompile(`(?i)\bseparate(?:s)? concerns\b`), "Values separation of concerns", 0},
			{regexp.MustCompile(`(?i)\bsingle responsibility\b`), "Values single responsibility", 0},
			{regexp.MustCompile(`(?i)\bdon'?t hardcode\b`), "Avoids hardcoding", 0},
			{regexp.MustCompile(`(?i)\b(dry|don'?t repeat yourself)\b`), "Values DRY code", 0},
		},
	},
	{
		name: "quality", classification: types.QualityStandard, area: types.AreaTesting, confidence: 0.35,
		rules: []rule{
			{regexp.MustCompile(`(?i)\bhandle(?:s)? errors?\b`), "Values thorough error handling", 0},
			{regexp.MustCompile(`(?i)\bwrite(?:s)? tests?\b`), "Values test coverage", 0},
			{regexp.MustCompile(`(?i)\baccessib(?:le|ility)\b`), "Values accessibility", 0},
			{regexp.MustCompile(`(?i)\blogging\b`), "Values structured logging", 0},
			{regexp.MustCompile(`(?i)\bvalidat(?:e|es|ion) input\b`), "Values input validation", 0},
		},
	},
	{
		name: "tool", classification: types.Preference, area: types.AreaGeneral, confidence: 0.35,
		rules: []rule{
			{regexp.MustCompile(`(?i)\buses?\s+` + toolNameRe + `\b`), "Uses %s", 1},
			{regexp.MustCompile(`(?i)\bswitch(?:es|ed)? to\s+` + toolNameRe + `\b`), "Uses %s", 1},
		},
	},
}
