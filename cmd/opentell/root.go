package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dryRun  bool
	verbose bool
	output  string
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "opentell",
	Short: "A sidecar that learns how you like to work with Claude Code",
	Long: `opentell observes turn pairs and tool events from Claude Code hooks
and builds a durable, evolving model of developer preferences: coding
style, architectural instincts, quality standards, and behavioral gaps.

Hooks:
  hook session-start  Inject accumulated preferences at session start
  hook turn-stop       Extract signals from the latest turn
  hook tool-use         Record a tool invocation for substitution inference
  hook session-end     Drain the WAL, consolidate, and re-synthesize

Other Commands:
  status        Show the current learning set at a glance
  promote       Write promotable learnings into the project's instructions
  config        Inspect and edit configuration`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cfgFile != "" {
			_ = os.Setenv("OPENTELL_CONFIG", cfgFile)
		}
	},
}

// Execute runs the root command, exiting 1 on error for ordinary CLI
// invocations. Hook subcommands never reach this path with a non-zero
// exit — they catch their own errors and always return nil.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "opentell:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "show what would happen without writing state")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "project config file, layered over ~/.opentell/config.json (default: ./.opentell/config.json)")
}

func getDryRun() bool  { return dryRun }
func getVerbose() bool { return verbose }
func getOutput() string {
	return output
}

func verbosePrintf(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
