// Package toolsignal infers preferences from sequences of buffered tool
// events rather than from what anyone said — a developer who runs "npm
// install" then "pnpm install" in the same turn has told us something no
// transcript text captures.
package toolsignal

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shobhit-87labs/opentell/internal/types"
)

const (
	packageManagerConfidence = 0.72
	testRunnerConfidence     = 0.68
	fileExtensionConfidence  = 0.65

	// formatContextMaxEvents bounds the tool-context string appended to
	// the classifier prompt.
	formatContextMaxEvents = 15
)

var packageManagers = []string{"npm", "pnpm", "yarn", "bun"}
var testRunners = []string{"jest", "vitest", "mocha", "pytest", "go test", "cargo test"}

// Detect runs all three structural substitution rules over the turn's
// buffered tool events (already filtered to ts > last_stop_ts by the
// caller) and returns the resulting signals.
func Detect(events []types.ToolEvent) []types.Signal {
	var signals []types.Signal
	if sig, ok := detectCommandSubstitution(events, packageManagers, types.AreaGeneral, packageManagerConfidence); ok {
		signals = append(signals, sig)
	}
	if sig, ok := detectCommandSubstitution(events, testRunners, types.AreaTesting, testRunnerConfidence); ok {
		signals = append(signals, sig)
	}
	if sig, ok := detectExtensionSubstitution(events); ok {
		signals = append(signals, sig)
	}
	return signals
}

// detectCommandSubstitution scans consecutive Bash events for a leading
// token drawn from vocabulary, differing → "Uses <B> — not <A>".
func detectCommandSubstitution(events []types.ToolEvent, vocabulary []string, area types.Area, confidence float64) (types.Signal, bool) {
	var seen []string
	for _, ev := range events {
		if ev.Kind != types.ToolEventBash {
			continue
		}
		tool := leadingToken(ev.Command, vocabulary)
		if tool == "" {
			continue
		}
		if len(seen) == 0 || seen[len(seen)-1] != tool {
			seen = append(seen, tool)
		}
	}
	if len(seen) < 2 {
		return types.Signal{}, false
	}
	first, last := seen[0], seen[len(seen)-1]
	if first == last {
		return types.Signal{}, false
	}
	return types.Signal{
		Text:            fmt.Sprintf("Uses %s — not %s", last, first),
		Confidence:      confidence,
		Classification:  types.Preference,
		Scope:           types.ScopeGlobal,
		Area:            area,
		DetectionMethod: types.DetectionToolPattern,
	}, true
}

// leadingToken returns the first word in cmd if it matches (or, for
// multi-word tools like "go test", is a prefix of) any entry in
// vocabulary.
func leadingToken(cmd string, vocabulary []string) string {
	cmd = strings.TrimSpace(cmd)
	for _, tool := range vocabulary {
		if cmd == tool || strings.HasPrefix(cmd, tool+" ") {
			return tool
		}
	}
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return ""
	}
	for _, tool := range vocabulary {
		if fields[0] == tool {
			return tool
		}
	}
	return ""
}

// detectExtensionSubstitution groups Write/Edit events by base path (with
// extension stripped); if a base path was touched under ≥2 distinct
// extensions, that is treated as a substitution.
func detectExtensionSubstitution(events []types.ToolEvent) (types.Signal, bool) {
	byBase := make(map[string][]string)
	for _, ev := range events {
		if ev.Kind != types.ToolEventWrite && ev.Kind != types.ToolEventEdit {
			continue
		}
		if ev.FilePath == "" {
			continue
		}
		ext := filepath.Ext(ev.FilePath)
		if ext == "" {
			continue
		}
		base := strings.TrimSuffix(ev.FilePath, ext)
		byBase[base] = append(byBase[base], ext)
	}

	for _, exts := range byBase {
		if len(exts) < 2 {
			continue
		}
		first, last := exts[0], exts[len(exts)-1]
		if first == last {
			continue
		}
		return types.Signal{
			Text:            fmt.Sprintf("Uses %s files — not %s", last, first),
			Confidence:      fileExtensionConfidence,
			Classification:  types.Preference,
			Scope:           types.ScopeGlobal,
			Area:            types.AreaGeneral,
			DetectionMethod: types.DetectionToolPattern,
		}, true
	}
	return types.Signal{}, false
}

// FormatToolContext renders the last (up to formatContextMaxEvents) tool
// events as a bounded multi-line string for the classifier prompt.
func FormatToolContext(events []types.ToolEvent) string {
	if len(events) == 0 {
		return ""
	}
	start := 0
	if len(events) > formatContextMaxEvents {
		start = len(events) - formatContextMaxEvents
	}

	var b strings.Builder
	for _, ev := range events[start:] {
		switch ev.Kind {
		case types.ToolEventBash:
			b.WriteString("bash: " + ev.Command + "\n")
		case types.ToolEventWrite:
			b.WriteString("wrote: " + ev.FilePath + "\n")
		case types.ToolEventEdit:
			b.WriteString("edited: " + ev.FilePath + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
