// ABOUTME: Query command asking a question against stored documents
// ABOUTME: Prints the answer with ranked sources in table or JSON form
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	queryNResults int
	queryExpand   bool
)

// NewQueryCmd creates the query command
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Ask a question about the ingested documents",
		Long: `Retrieve relevant chunks and produce an answer.

Examples:
  documind query "What does the report conclude?"
  documind query --results 3 "Who are the authors?"
  documind query --format json "Summarize chapter two"`,
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().IntVar(&queryNResults, "results", 5, "Number of source chunks to retrieve (1-10)")
	cmd.Flags().BoolVar(&queryExpand, "expand", false, "Show generated alternative phrasings of the question")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryNResults < 1 || queryNResults > 10 {
		return fmt.Errorf("--results must be 1-10, got %d", queryNResults)
	}

	pipeline, closeStore, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closeStore()

	if queryExpand && !quiet {
		for _, q := range pipeline.ExpandQuery(cmd.Context(), args[0], 3) {
			fmt.Fprintf(cmd.OutOrStdout(), "> %s\n", q)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	state, err := pipeline.Answer(cmd.Context(), args[0], queryNResults)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	if outputFormat == "json" {
		payload := map[string]any{
			"answer":   state.Answer,
			"sources":  state.Sources,
			"question": state.Question,
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", state.Answer)

	if len(state.Sources) > 0 && !quiet {
		fmt.Fprintln(cmd.OutOrStdout())
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tFILE\tCHUNK\tTEXT\n")
		for _, src := range state.Sources {
			fmt.Fprintf(w, "%.3f\t%s\t%d\t%s\n",
				src.SimilarityScore,
				src.FileName,
				src.ChunkIndex,
				truncate(src.Chunk, 60))
		}
		w.Flush()
	}

	return nil
}
