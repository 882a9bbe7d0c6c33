package pattern

import "regexp"

const noiseAffirmationMaxLen = 15
const noiseDeveloperMaxLen = 1500

var pureAffirmationRe = regexp.MustCompile(`(?i)^(thanks|thank you|ok|okay|got it|sounds good|perfect|nice|cool|great|awesome|yep|sure)\.?!?$`)

var openerRe = regexp.MustCompile(`(?i)^(now|also|next|and also|then|after that)\b`)

var questionRe = regexp.MustCompile(`(?i)^(what|why|how|when|where|can you|could you|would you|is there|are there|do you|does it)\b.*\?\s*$`)

var questionExceptionRe = regexp.MustCompile(`(?i)\b(instead|rather)\b`)
var questionAllowedOpenerRe = regexp.MustCompile(`(?i)^(what happens|what about|what if)\b`)

var factualBugRe = regexp.MustCompile(`(?i)\b(that'?s wrong|there'?s a bug|it'?s broken|this (is|isn'?t) working|throws an error|doesn'?t work)\b`)

// isNoise implements the pattern detector's noise filter (spec.md §4.3):
// a developer message is suppressed if it is a pure affirmation, a
// low-signal opener, a pure question (without a correction keyword), a
// factual bug report, or too long to be a crisp preference statement.
func isNoise(developerText string) bool {
	trimmed := developerText
	if len(trimmed) <= noiseAffirmationMaxLen && pureAffirmationRe.MatchString(trimmed) {
		return true
	}
	if openerRe.MatchString(trimmed) {
		return true
	}
	if questionRe.MatchString(trimmed) && !questionExceptionRe.MatchString(trimmed) && !questionAllowedOpenerRe.MatchString(trimmed) {
		return true
	}
	if factualBugRe.MatchString(trimmed) {
		return true
	}
	if len(trimmed) > noiseDeveloperMaxLen {
		return true
	}
	return false
}
