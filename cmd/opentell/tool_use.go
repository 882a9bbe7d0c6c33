package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/shobhit-87labs/opentell/internal/config"
	"github.com/shobhit-87labs/opentell/internal/store"
	"github.com/shobhit-87labs/opentell/internal/types"
	"github.com/shobhit-87labs/opentell/pkg/hookio"
)

var hookToolUseCmd = &cobra.Command{
	Use:   "tool-use",
	Short: "Record a tool invocation into the session buffer",
	RunE: func(cmd *cobra.Command, args []string) error {
		runHook("tool-use", handleToolUse)
		return nil
	},
}

const toolCommandMaxChars = 300

func handleToolUse(st *store.Store, cfg *config.Config, event hookio.Event) error {
	var kind types.ToolEventKind
	switch event.ToolName {
	case "Bash":
		kind = types.ToolEventBash
	case "Write":
		kind = types.ToolEventWrite
	case "Edit":
		kind = types.ToolEventEdit
	default:
		return nil
	}

	evt := types.ToolEvent{
		Kind:      kind,
		Timestamp: time.Now().UTC(),
		Command:   truncateString(event.Command(), toolCommandMaxChars),
		FilePath:  event.FilePath(),
	}

	buf := st.LoadBuffer()
	buf.SessionID = event.SessionID
	buf.ToolEvents = append(buf.ToolEvents, evt)
	if len(buf.ToolEvents) > types.ToolEventBufferCap {
		buf.ToolEvents = buf.ToolEvents[len(buf.ToolEvents)-types.ToolEventBufferCap:]
	}
	return st.SaveBuffer(buf)
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
