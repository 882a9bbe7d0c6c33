package main

import "regexp"

// errorIndicators is the fixed set of error surface patterns turn-stop
// scans assistant text for, per the error-context extraction step of the
// hook interface: typed errors, POSIX errno strings, generic failure
// phrasing, missing-module errors, and assertion failures.
var errorIndicators = []*regexp.Regexp{
	regexp.MustCompile(`Error:\s*\S`),
	regexp.MustCompile(`\b\w+Error\b`),
	regexp.MustCompile(`\b(ENOENT|EACCES|ECONNREFUSED|EADDRINUSE|ETIMEDOUT|EPIPE)\b`),
	regexp.MustCompile(`(?i)command failed`),
	regexp.MustCompile(`Cannot find module`),
	regexp.MustCompile(`(?i)assertion (?:failed|error)`),
}

const errorContextSurround = 100

// extractErrorContext scans text for the first error indicator and returns
// up to errorContextSurround characters on either side of the match, or ""
// if none of the indicators fire.
func extractErrorContext(text string) string {
	for _, re := range errorIndicators {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		start := loc[0] - errorContextSurround
		if start < 0 {
			start = 0
		}
		end := loc[1] + errorContextSurround
		if end > len(text) {
			end = len(text)
		}
		return text[start:end]
	}
	return ""
}
