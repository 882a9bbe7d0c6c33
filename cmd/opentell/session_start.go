package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shobhit-87labs/opentell/internal/config"
	"github.com/shobhit-87labs/opentell/internal/contextbuilder"
	"github.com/shobhit-87labs/opentell/internal/store"
	"github.com/shobhit-87labs/opentell/pkg/hookio"
)

var hookSessionStartCmd = &cobra.Command{
	Use:   "session-start",
	Short: "Reset session state and emit accumulated context",
	RunE: func(cmd *cobra.Command, args []string) error {
		runHook("session-start", handleSessionStart)
		return nil
	},
}

func handleSessionStart(st *store.Store, cfg *config.Config, event hookio.Event) error {
	if err := st.ClearBuffer(event.SessionID); err != nil {
		st.Logf("session-start: clear buffer: %v", err)
	}
	if err := st.ApplyDecay(); err != nil {
		st.Logf("session-start: apply decay: %v", err)
	}
	if err := st.IncrementSessionCount(); err != nil {
		st.Logf("session-start: increment session count: %v", err)
	}

	active := st.GetActive(cfg.ConfidenceThreshold)
	profile, hasProfile := st.LoadProfile()
	var context string
	if hasProfile {
		context = contextbuilder.Build(active, &profile)
	} else {
		context = contextbuilder.Build(active, nil)
	}
	if context != "" {
		fmt.Println(context)
	}

	if st.ShouldCheckSelfUpdate() {
		if err := spawnDetached("hook", "__self-update"); err == nil {
			_ = st.MarkSelfUpdateChecked()
		} else {
			st.Logf("session-start: spawn self-update: %v", err)
		}
	}

	return nil
}
