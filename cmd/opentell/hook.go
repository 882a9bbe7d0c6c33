package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shobhit-87labs/opentell/internal/config"
	"github.com/shobhit-87labs/opentell/internal/store"
	"github.com/shobhit-87labs/opentell/pkg/hookio"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run one of Claude Code's hook entry points",
	Long: `Each subcommand reads a JSON event object from standard input and
exits 0 unconditionally — a hook must never surface a failure to the host,
per the error handling design. Failures are logged to opentell.log.`,
}

func init() {
	rootCmd.AddCommand(hookCmd)
	hookCmd.AddCommand(hookSessionStartCmd, hookTurnStopCmd, hookToolUseCmd, hookSessionEndCmd)
}

// runHook decodes the event, opens the store, resolves config, and calls
// fn — swallowing every error along the way so the hook always exits 0.
// A paused config short-circuits before fn runs at all.
func runHook(name string, fn func(*store.Store, *config.Config, hookio.Event) error) {
	event, err := hookio.Decode(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opentell hook %s: decode event: %v\n", name, err)
		return
	}

	st, err := store.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "opentell hook %s: open store: %v\n", name, err)
		return
	}

	cfg := config.Load(nil)
	if cfg.Paused {
		return
	}

	if err := fn(st, cfg, event); err != nil {
		st.Logf("hook %s failed: %v", name, err)
	}
}
