// ABOUTME: Root CLI command and global flags
// ABOUTME: Registers all subcommands and handles execution
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ragdesk",
		Short: "Retrieval-augmented support desk",
		Long: `
██████╗  █████╗  ██████╗ ██████╗ ███████╗███████╗██╗  ██╗
██╔══██╗██╔══██║██╔════╝ ██╔══██╗██╔════╝██╔════╝██║ ██╔╝
██████╔╝███████║██║  ███╗██║  ██║█████╗  ███████╗█████╔╝
██╔══██╗██╔══██║██║   ██║██║  ██║██╔══╝  ╚════██║██╔═██╗
██║  ██║██║  ██║╚██████╔╝██████╔╝███████╗███████║██║  ██╗
╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝ ╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝

Answer customer questions from your own documents.

Ingest FAQs, policies, and product docs; ragdesk chunks and embeds
them into a local SQLite index, then answers questions with the most
relevant passages and the session's conversation history as context.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewMCPCmd())
	rootCmd.AddCommand(NewIngestCmd())
	rootCmd.AddCommand(NewAskCmd())
	rootCmd.AddCommand(NewHistoryCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
