package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shobhit-87labs/opentell/internal/classifier"
	"github.com/shobhit-87labs/opentell/internal/config"
	"github.com/shobhit-87labs/opentell/internal/statlog"
	"github.com/shobhit-87labs/opentell/internal/store"
	"github.com/shobhit-87labs/opentell/internal/types"
)

// classifyPayload is the WAL entry plus the session id it needs to attach
// to any resulting learning, handed to the detached classifier worker via
// a temp file rather than a pipe — the worker's parent hook process may
// already have exited by the time the worker reads it.
type classifyPayload struct {
	SessionID string         `json:"session_id"`
	Entry     types.WALEntry `json:"entry"`
}

var hookClassifyWorkerCmd = &cobra.Command{
	Use:    "__classify-worker <payload-file>",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runClassifyWorker(args[0])
		return nil
	},
}

var hookSelfUpdateCmd = &cobra.Command{
	Use:    "__self-update",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		runSelfUpdateCheck()
		return nil
	},
}

func init() {
	hookCmd.AddCommand(hookClassifyWorkerCmd, hookSelfUpdateCmd)
}

// runClassifyWorker classifies one WAL-queued pair and mutates the store
// via the standard API, per the background worker lifecycle design note:
// classify, mutate store, remove the WAL entry. Every failure is logged
// and swallowed — nothing here may ever surface to a terminal.
func runClassifyWorker(payloadPath string) {
	data, err := os.ReadFile(payloadPath)
	if err != nil {
		return
	}
	_ = os.Remove(payloadPath)

	var payload classifyPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	st, err := store.Open()
	if err != nil {
		return
	}
	cfg := config.Load(nil)
	if cfg.AnthropicAPIKey == "" {
		st.Logf("classify worker: no API key configured, leaving pair in WAL")
		return
	}

	client := classifier.New(cfg.AnthropicAPIKey, cfg.ClassifierModel)
	pair := types.Pair{AssistantText: payload.Entry.ClaudeSaid, DeveloperText: payload.Entry.UserSaid}

	result, err := client.Classify(context.Background(), pair, payload.Entry.ErrorContext, payload.Entry.ToolContext)
	if err != nil {
		st.Logf("classify worker: classify: %v", err)
		return
	}
	if paths, pathErr := store.DefaultPaths(); pathErr == nil {
		_ = statlog.Record(paths.Stats(), statlog.CallClassify, result.Usage.InputTokens, result.Usage.OutputTokens, time.Now().UTC())
	}

	if result.IsLearning() {
		sig := result.ToSignal(pair)
		sig.SessionID = payload.SessionID
		if _, err := st.AddCandidate(sig); err != nil {
			st.Logf("classify worker: add candidate: %v", err)
		}
	}

	if err := st.RemoveFromWAL(payload.Entry); err != nil {
		st.Logf("classify worker: remove from WAL: %v", err)
	}
}

// runSelfUpdateCheck stands in for the auto-updater, which is a separate,
// out-of-scope component (see the host-integration boundary). This only
// exercises the spawn-and-interval-gate mechanism session-start owns.
func runSelfUpdateCheck() {
	st, err := store.Open()
	if err != nil {
		return
	}
	st.Logf("self-update check ran (auto-updater is a separate component)")
}
