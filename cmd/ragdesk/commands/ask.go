// ABOUTME: Ask command answers one question from the terminal
// ABOUTME: Uses a session id so follow-up questions share history
package commands

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from the indexed documents",
		Long: `Answer a question from the indexed documents

Retrieves the most relevant indexed passages, combines them with the
session's conversation history, and generates an answer. Pass the same
--session id across calls to hold a multi-turn conversation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, sessionID, strings.Join(args, " "))
		},
		Example: `  # One-off question (fresh session)
  ragdesk ask "What is the return window?"

  # Follow-up in the same conversation
  ragdesk ask --session support-42 "What about sale items?"`,
	}

	cmd.Flags().StringVarP(&sessionID, "session", "s", "", "conversation session id (default: a new random id)")

	return cmd
}

func runAsk(cmd *cobra.Command, sessionID, question string) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	if sessionID == "" {
		sessionID = uuid.New().String()
		if verbose {
			log.Printf("using new session %s", sessionID)
		}
	}

	answer, err := svc.orchestrator.Ask(cmd.Context(), sessionID, question)
	if err != nil {
		return fmt.Errorf("failed to answer: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(session: %s)\n", sessionID)
	}
	return nil
}
