// ABOUTME: History command prints a session's transcript
// ABOUTME: Read-only; never refreshes the session's activity
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/questlabs/ragdesk/internal/core"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <session-id>",
		Short: "Show a session's conversation history",
		Long: `Show a session's conversation history

Prints the session's turns in timestamp order. An unknown or expired
session prints nothing and exits successfully.`,
		Args: cobra.ExactArgs(1),
		RunE: runHistory,
	}

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	sessionID := args[0]
	turns, err := svc.orchestrator.History(cmd.Context(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(turns) == 0 {
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "no history for session %s\n", sessionID)
		}
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), core.FormatTranscript(turns))
	return nil
}
