// ABOUTME: Root command for the DocuMind CLI with global flags
// ABOUTME: Registers all subcommands and enforces flag exclusivity
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documind",
		Short: "Document Q&A over your own files",
		Long: `DocuMind ingests PDF, DOCX, and TXT documents into a local vector
store and answers questions about them using retrieval-augmented
generation.

Without an OPENAI_API_KEY the service still works: documents are
embedded with a local model and answers point at the retrieved
sources instead of being generated.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, table, json)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewQueryCmd())
	cmd.AddCommand(NewDocumentsCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
