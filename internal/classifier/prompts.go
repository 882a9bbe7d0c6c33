package classifier

import (
	"fmt"
	"strings"
)

// systemPromptV1 enumerates the recognized outcomes and instructs strict
// JSON output. It is versioned so a future revision doesn't silently
// change the shape of stored classifications mid-fleet.
const systemPromptV1 = `You classify one exchange between a developer and an AI coding assistant.

Return ONLY a JSON object, no prose, matching this shape:
{"classification": "<CLASS>", "learning": "<string, omitted for non-learning classes>", "scope": "global|repo|language", "certainty": "high|low", "area": "architecture|frontend|backend|testing|devops|data|ux|general"}

Learning-bearing classes, from deepest to shallowest:
- THINKING_PATTERN: a durable way the developer reasons about problems (e.g. "always thinks about failure modes first")
- DESIGN_PRINCIPLE: a structural preference about how code should be organized
- QUALITY_STANDARD: a bar the developer holds work to (testing, error handling, accessibility, ...)
- BEHAVIORAL_GAP: a recurring correction pattern that doesn't fit the above
- PREFERENCE: a concrete tool, library, or stylistic choice

Rejection classes (no "learning" field, used when nothing worth remembering happened):
- SITUATIONAL: true only for this specific piece of code or bug, not a general preference
- FACTUAL: the developer stated a fact, not a preference or correction
- CONTINUATION: the developer is just continuing the conversation, not correcting or teaching anything

Judge "certainty" high only when the developer's words leave no ambiguity about the preference; use low otherwise.`

// classifyUserTemplate lays out one classify request's user message. It
// does no truncation itself: Classify bounds the assistant, developer and
// error fields before they are spliced in, and the tool context is used as
// given.
const classifyUserTemplate = "Assistant said (truncated): %s\n\nDeveloper replied (truncated): %s%s%s"

// FormatSystemPrompt returns the fixed classification system prompt.
func FormatSystemPrompt() string {
	return systemPromptV1
}

// FormatClassifyPrompt renders the user message for one classify request.
// assistantText and developerText are pre-truncated by the caller to the
// bounds assistantMaxChars/developerMaxChars.
func FormatClassifyPrompt(assistantText, developerText, errorContext, toolContext string) string {
	var errPart, toolPart string
	if errorContext != "" {
		errPart = "\n\nError context: " + errorContext
	}
	if toolContext != "" {
		toolPart = "\n\nTool context:\n" + toolContext
	}
	return fmt.Sprintf(classifyUserTemplate, assistantText, developerText, errPart, toolPart)
}

// consolidationSystemPrompt asks for one synthesized instinct from a
// cluster of related learnings — a deeper pattern, not a restatement.
const consolidationSystemPrompt = `You are distilling a developer's coding instincts from a cluster of related observations about them.

Given several short statements that share a theme, respond with ONE sentence describing the underlying design instinct that explains all of them — not a summary or a restatement of any single one. Write it the way you'd describe a habit of mind, not a rule. Do not use quotation marks. Do not mention that these are separate observations. Return only the sentence, no preamble.`

const consolidationUserTemplate = "Related observations about the same developer:\n%s"

// FormatConsolidationPrompt renders the user message for a consolidation
// synthesis call. memberTexts are the texts of the cluster's member
// learnings, one per line.
func FormatConsolidationPrompt(memberTexts []string) string {
	var b strings.Builder
	for _, t := range memberTexts {
		b.WriteString("- ")
		b.WriteString(t)
		b.WriteString("\n")
	}
	return fmt.Sprintf(consolidationUserTemplate, b.String())
}

// FormatConsolidationSystemPrompt returns the fixed consolidation system prompt.
func FormatConsolidationSystemPrompt() string {
	return consolidationSystemPrompt
}

// profileSystemPrompt asks for a five-paragraph narrative brief rendered
// as one cohesive paragraph, per spec.md §4.9.
const profileSystemPrompt = `You are writing a narrative brief describing a developer's working style, for another AI assistant to read before starting a session with them.

Given their accumulated learnings grouped by category, write one cohesive paragraph (not five separate paragraphs, not a bulleted list) that flows through: how they think about problems, their architectural instincts, the quality bar they hold work to, their known blind spots or recurring gaps, and how they like to work day to day. Write in third person, present tense, as a colleague briefing another colleague. Do not quote the learnings verbatim — synthesize. Return only the paragraph, no preamble or heading.`

const profileUserTemplate = "Learnings grouped by category, deepest first:\n%s"

// FormatProfilePrompt renders the user message for a profile synthesis
// call. sections is pre-formatted text grouping learnings by
// classification in depth order.
func FormatProfilePrompt(sections string) string {
	return fmt.Sprintf(profileUserTemplate, sections)
}

// FormatProfileSystemPrompt returns the fixed profile synthesis system prompt.
func FormatProfileSystemPrompt() string {
	return profileSystemPrompt
}
