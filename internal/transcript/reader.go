// Package transcript parses the host assistant's line-delimited transcript
// into ordered (assistant_text, developer_text) pairs. It is read-only,
// idempotent, and never blocks: malformed lines are skipped, missing files
// yield an empty result, and no error is fatal to the caller.
package transcript

import (
	"bufio"
	"encoding/json"
	"os"
	"time"

	"github.com/shobhit-87labs/opentell/internal/types"
)

// MinTextLength is the longest record text that is still dropped: a record
// must have more than MinTextLength bytes of text to be preserved, so
// shorter ones (e.g. bare acknowledgements truncated by the host) never
// reach pairing.
const MinTextLength = 3

// roleAssistant and roleDeveloper are the two record roles the reader
// pairs. The host's transcript uses "user" for the developer's turn.
const (
	roleAssistant = "assistant"
	roleDeveloper = "user"
)

// rawRecord mirrors one line of the host's transcript. Content may be a
// bare string or an array of content blocks; only text blocks survive.
type rawRecord struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	SessionID string          `json:"sessionId"`
	Message   *rawMessage     `json:"message,omitempty"`
}

type rawMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// record is one parsed transcript entry after tool content has been
// stripped.
type record struct {
	role string
	text string
	ts   time.Time
}

// timestampFormats lists the formats attempted when parsing a record's
// timestamp; the host has been observed using both.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
}

func parseTimestamp(s string) time.Time {
	for _, f := range timestampFormats {
		if ts, err := time.Parse(f, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// extractText pulls the concatenated text blocks from a message's content,
// discarding tool_use/tool_result blocks entirely.
func extractText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}

	var text string
	for _, b := range blocks {
		if b.Type == "text" {
			text += b.Text
		}
	}
	return text
}

// parseLine parses one JSONL line into a record, or returns ok=false if the
// line is malformed, is not a message record, has no message, or its text
// is too short to keep.
func parseLine(line []byte) (record, bool) {
	var raw rawRecord
	if err := json.Unmarshal(line, &raw); err != nil {
		return record{}, false
	}
	if raw.Message == nil {
		return record{}, false
	}
	if raw.Message.Role != roleAssistant && raw.Message.Role != roleDeveloper {
		return record{}, false
	}

	text := extractText(raw.Message.Content)
	if len(text) <= MinTextLength {
		return record{}, false
	}

	return record{
		role: raw.Message.Role,
		text: text,
		ts:   parseTimestamp(raw.Timestamp),
	}, true
}

// ReadPairs reads the transcript at path and returns every
// (assistant_text, developer_text) pair where a developer record
// immediately follows an assistant record. Missing files and malformed
// lines are treated as absent data, never as errors.
func ReadPairs(path string) ([]types.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only

	var records []record
	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if rec, ok := parseLine(line); ok {
			records = append(records, rec)
		}
	}
	// A scanner error means the tail of the file is unreadable; return
	// whatever pairs were already assembled rather than failing the hook.
	_ = scanner.Err()

	return pairUp(records), nil
}

// pairUp scans records in order and emits a Pair for every assistant
// record immediately followed by a developer record.
func pairUp(records []record) []types.Pair {
	var pairs []types.Pair
	for i := 0; i+1 < len(records); i++ {
		if records[i].role == roleAssistant && records[i+1].role == roleDeveloper {
			pairs = append(pairs, types.Pair{
				AssistantText: records[i].text,
				DeveloperText: records[i+1].text,
				Timestamp:     records[i+1].ts,
			})
		}
	}
	return pairs
}

// LastPairs returns at most n of the most recently produced pairs from the
// transcript at path, oldest first.
func LastPairs(path string, n int) ([]types.Pair, error) {
	pairs, err := ReadPairs(path)
	if err != nil {
		return nil, err
	}
	if n <= 0 || len(pairs) <= n {
		return pairs, nil
	}
	return pairs[len(pairs)-n:], nil
}
