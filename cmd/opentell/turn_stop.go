package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shobhit-87labs/opentell/internal/config"
	"github.com/shobhit-87labs/opentell/internal/observer"
	"github.com/shobhit-87labs/opentell/internal/pattern"
	"github.com/shobhit-87labs/opentell/internal/store"
	"github.com/shobhit-87labs/opentell/internal/toolsignal"
	"github.com/shobhit-87labs/opentell/internal/transcript"
	"github.com/shobhit-87labs/opentell/internal/types"
	"github.com/shobhit-87labs/opentell/pkg/hookio"
)

const turnStopPairWindow = 3

var hookTurnStopCmd = &cobra.Command{
	Use:   "turn-stop",
	Short: "Extract signals from the most recent turn pair(s)",
	RunE: func(cmd *cobra.Command, args []string) error {
		runHook("turn-stop", handleTurnStop)
		return nil
	},
}

func handleTurnStop(st *store.Store, cfg *config.Config, event hookio.Event) error {
	pairs, err := transcript.LastPairs(event.TranscriptPath, turnStopPairWindow)
	if err != nil {
		st.Logf("turn-stop: read transcript: %v", err)
		return nil
	}

	buf := st.LoadBuffer()
	buf.SessionID = event.SessionID
	cache := store.NewAnalyzedCache(buf)

	for _, pair := range pairs {
		fp := pair.Fingerprint()
		if cache.Seen(fp) {
			continue
		}

		var relevant []types.ToolEvent
		for _, ev := range buf.ToolEvents {
			if ev.Timestamp.After(buf.LastStopTS) {
				relevant = append(relevant, ev)
			}
		}
		for _, sig := range toolsignal.Detect(relevant) {
			sig.SessionID = event.SessionID
			if _, err := st.AddCandidate(sig); err != nil {
				st.Logf("turn-stop: add tool-signal candidate: %v", err)
			}
		}
		buf.LastStopTS = time.Now().UTC()

		errCtx := extractErrorContext(pair.AssistantText)

		result := pattern.Detect(pair)
		switch {
		case result.Detected:
			for _, sig := range result.Signals {
				sig.SessionID = event.SessionID
				if _, err := st.AddCandidate(sig); err != nil {
					st.Logf("turn-stop: add pattern candidate: %v", err)
				}
			}
		case !result.Noise:
			toolCtx := toolsignal.FormatToolContext(relevant)
			written, err := st.AppendWAL(types.WALEntry{
				ClaudeSaid:   pair.AssistantText,
				UserSaid:     pair.DeveloperText,
				ErrorContext: errCtx,
				ToolContext:  toolCtx,
			})
			if err != nil {
				st.Logf("turn-stop: append WAL: %v", err)
			} else if err := spawnClassifyWorker(event.SessionID, written); err != nil {
				st.Logf("turn-stop: spawn classify worker: %v", err)
			}
		}

		if sig, ok := observer.DetectValidated(pair.AssistantText, pair.DeveloperText); ok {
			sig.SessionID = event.SessionID
			if _, err := st.AddCandidate(sig); err != nil {
				st.Logf("turn-stop: add validated observation: %v", err)
			}
		} else {
			for _, sig := range observer.DetectObservations(pair.AssistantText) {
				sig.SessionID = event.SessionID
				if _, err := st.AddObservation(sig); err != nil {
					st.Logf("turn-stop: add observation: %v", err)
				}
			}
		}

		cache.Add(fp)
	}

	buf.Analyzed = cache.Fingerprints()
	return st.SaveBuffer(buf)
}

// spawnClassifyWorker writes entry to a temp payload file and detaches a
// classifier worker process to consume it, per the background worker
// lifecycle design note.
func spawnClassifyWorker(sessionID string, entry types.WALEntry) error {
	payload := classifyPayload{SessionID: sessionID, Entry: entry}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp("", "opentell-classify-*.json")
	if err != nil {
		return err
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close() //nolint:errcheck // best-effort cleanup below
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}

	if err := spawnDetached("hook", "__classify-worker", path); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
