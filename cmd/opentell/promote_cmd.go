package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shobhit-87labs/opentell/internal/promote"
	"github.com/shobhit-87labs/opentell/internal/store"
)

var promoteInstructionFile string

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Write promotable learnings into the project's instruction file",
	Long: `Finds every learning with confidence >= 0.80 and evidence_count >= 4
that hasn't already been promoted, writes them into a fenced section of the
target instruction file, and marks them promoted so they aren't re-injected
at session start.`,
	RunE: runPromote,
}

func init() {
	promoteCmd.Flags().StringVar(&promoteInstructionFile, "file", "CLAUDE.md", "instruction file to write the fenced section into")
	rootCmd.AddCommand(promoteCmd)
}

func runPromote(cmd *cobra.Command, args []string) error {
	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	promotable := st.GetPromotable()
	if len(promotable) == 0 {
		fmt.Println("Nothing to promote.")
		return nil
	}

	path, err := filepath.Abs(promoteInstructionFile)
	if err != nil {
		return fmt.Errorf("resolve instruction file path: %w", err)
	}

	if getDryRun() {
		fmt.Printf("[dry-run] Would promote %d learning(s) into %s\n", len(promotable), path)
		fmt.Print(promote.RenderSection(promotable))
		return nil
	}

	if err := promote.WriteToFile(path, promotable); err != nil {
		return fmt.Errorf("write instruction file: %w", err)
	}

	ids := make([]string, len(promotable))
	for i, l := range promotable {
		ids[i] = l.ID
	}
	if err := st.MarkPromoted(ids); err != nil {
		return fmt.Errorf("mark promoted: %w", err)
	}

	fmt.Printf("Promoted %d learning(s) into %s\n", len(promotable), path)
	return nil
}
