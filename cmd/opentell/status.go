package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shobhit-87labs/opentell/internal/config"
	"github.com/shobhit-87labs/opentell/internal/statlog"
	"github.com/shobhit-87labs/opentell/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current learning set at a glance",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusOutput struct {
	TotalLearnings int           `json:"total_learnings"`
	Active         int           `json:"active"`
	Promotable     int           `json:"promotable"`
	Archived       int           `json:"archived"`
	Inferred       int           `json:"inferred"`
	TotalSessions  int           `json:"total_sessions"`
	HasProfile     bool          `json:"has_profile"`
	Stats          statlog.Entry `json:"stats_totals"`
	StateDir       string        `json:"state_dir"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	cfg := config.Load(nil)

	all := st.GetAll()
	out := statusOutput{
		TotalLearnings: len(all),
		Active:         len(st.GetActive(cfg.ConfidenceThreshold)),
		Promotable:     len(st.GetPromotable()),
		TotalSessions:  st.Meta().TotalSessions,
	}
	for _, l := range all {
		if l.Archived {
			out.Archived++
		}
		if l.Inferred {
			out.Inferred++
		}
	}
	_, out.HasProfile = st.LoadProfile()

	paths, err := store.DefaultPaths()
	if err == nil {
		out.Stats = statlog.Totals(statlog.Load(paths.Stats()))
		out.StateDir = paths.Dir
	}

	return writeStructured(out, func() error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		defer w.Flush() //nolint:errcheck // best-effort flush
		fmt.Fprintf(w, "State directory:\t%s\n", out.StateDir)
		fmt.Fprintf(w, "Total learnings:\t%d\n", out.TotalLearnings)
		fmt.Fprintf(w, "Active:\t%d\n", out.Active)
		fmt.Fprintf(w, "Promotable:\t%d\n", out.Promotable)
		fmt.Fprintf(w, "Archived:\t%d\n", out.Archived)
		fmt.Fprintf(w, "Inferred (unvalidated):\t%d\n", out.Inferred)
		fmt.Fprintf(w, "Sessions observed:\t%d\n", out.TotalSessions)
		fmt.Fprintf(w, "Profile synthesized:\t%v\n", out.HasProfile)
		fmt.Fprintf(w, "Language-model calls:\t%d\n", out.Stats.Calls)
		fmt.Fprintf(w, "Estimated cost:\t$%.4f\n", out.Stats.EstimatedCostUSD)
		return nil
	})
}
