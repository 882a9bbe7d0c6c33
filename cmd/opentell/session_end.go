package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shobhit-87labs/opentell/internal/classifier"
	"github.com/shobhit-87labs/opentell/internal/config"
	"github.com/shobhit-87labs/opentell/internal/consolidator"
	"github.com/shobhit-87labs/opentell/internal/crosssession"
	"github.com/shobhit-87labs/opentell/internal/profile"
	"github.com/shobhit-87labs/opentell/internal/statlog"
	"github.com/shobhit-87labs/opentell/internal/store"
	"github.com/shobhit-87labs/opentell/internal/types"
	"github.com/shobhit-87labs/opentell/pkg/hookio"
)

var hookSessionEndCmd = &cobra.Command{
	Use:   "session-end",
	Short: "Drain the WAL, run cross-session analysis, consolidate, and re-synthesize",
	RunE: func(cmd *cobra.Command, args []string) error {
		runHook("session-end", handleSessionEnd)
		return nil
	},
}

func handleSessionEnd(st *store.Store, cfg *config.Config, event hookio.Event) error {
	drainWAL(st, cfg, event.SessionID)

	if err := st.ApplyCrossSession(crosssession.Analyze); err != nil {
		st.Logf("session-end: cross-session analysis: %v", err)
	}

	meta := st.Meta()
	active := st.GetActive(cfg.ConfidenceThreshold)

	if consolidator.ShouldConsolidate(active, meta, meta.TotalSessions) {
		runConsolidation(st, cfg, active)
		active = st.GetActive(cfg.ConfidenceThreshold)
	}

	existingProfile, hasProfile := st.LoadProfile()
	var existingPtr *types.Profile
	if hasProfile {
		existingPtr = &existingProfile
	}
	if profile.NeedsUpdate(active, existingPtr, meta.TotalSessions) {
		runProfileSynthesis(st, cfg, active, meta.TotalSessions)
	}

	if err := st.ApplyPassiveAccumulation(); err != nil {
		st.Logf("session-end: passive accumulation: %v", err)
	}
	if err := st.ApplyDecay(); err != nil {
		st.Logf("session-end: apply decay: %v", err)
	}
	if err := st.ClearWAL(); err != nil {
		st.Logf("session-end: clear WAL: %v", err)
	}
	if err := st.ClearBuffer(event.SessionID); err != nil {
		st.Logf("session-end: clear buffer: %v", err)
	}
	return nil
}

// drainWAL classifies up to types.WALDrainCap queued pairs synchronously —
// session-end has no successor hook to hand the work off to, unlike
// turn-stop's detached workers.
func drainWAL(st *store.Store, cfg *config.Config, sessionID string) {
	if cfg.AnthropicAPIKey == "" {
		return
	}
	entries, err := st.DrainWAL()
	if err != nil {
		st.Logf("session-end: drain WAL: %v", err)
		return
	}
	if len(entries) > types.WALDrainCap {
		entries = entries[:types.WALDrainCap]
	}

	client := classifier.New(cfg.AnthropicAPIKey, cfg.ClassifierModel)
	ctx := context.Background()
	paths, pathsErr := store.DefaultPaths()

	for _, entry := range entries {
		pair := types.Pair{AssistantText: entry.ClaudeSaid, DeveloperText: entry.UserSaid}
		result, err := client.Classify(ctx, pair, entry.ErrorContext, entry.ToolContext)
		if err != nil {
			st.Logf("session-end: classify WAL entry: %v", err)
			continue
		}
		if pathsErr == nil {
			_ = statlog.Record(paths.Stats(), statlog.CallClassify, result.Usage.InputTokens, result.Usage.OutputTokens, entry.WrittenAt)
		}
		if result.IsLearning() {
			sig := result.ToSignal(pair)
			sig.SessionID = sessionID
			if _, err := st.AddCandidate(sig); err != nil {
				st.Logf("session-end: add candidate from WAL: %v", err)
				continue
			}
		}
		if err := st.RemoveFromWAL(entry); err != nil {
			st.Logf("session-end: remove from WAL: %v", err)
		}
	}
}

func runConsolidation(st *store.Store, cfg *config.Config, active []types.Learning) {
	if cfg.AnthropicAPIKey == "" {
		return
	}
	client := classifier.New(cfg.AnthropicAPIKey, cfg.SynthesisModel)
	ctx := context.Background()

	for _, cluster := range consolidator.FindClusters(active) {
		synthesized, err := consolidator.Consolidate(ctx, client, cluster)
		if err != nil {
			st.Logf("session-end: consolidate cluster %s: %v", cluster.Group.ID, err)
			continue
		}
		if _, err := st.AddConsolidated(synthesized.Learning, synthesized.MemberIDs); err != nil {
			st.Logf("session-end: persist consolidated learning: %v", err)
		}
	}
	if err := st.MarkConsolidationRun(st.Meta().TotalSessions); err != nil {
		st.Logf("session-end: mark consolidation run: %v", err)
	}
}

func runProfileSynthesis(st *store.Store, cfg *config.Config, active []types.Learning, sessionCount int) {
	if cfg.AnthropicAPIKey == "" {
		return
	}
	client := classifier.New(cfg.AnthropicAPIKey, cfg.SynthesisModel)
	ctx := context.Background()

	p, err := profile.Synthesize(ctx, client, active, sessionCount)
	if err != nil {
		st.Logf("session-end: synthesize profile: %v", err)
		return
	}
	if err := st.SaveProfile(p); err != nil {
		st.Logf("session-end: save profile: %v", err)
		return
	}
	if err := st.MarkProfileRun(sessionCount); err != nil {
		st.Logf("session-end: mark profile run: %v", err)
	}
}
