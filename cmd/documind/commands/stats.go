// ABOUTME: Stats command summarizing the vector store contents
// ABOUTME: Reports chunk totals and the set of ingested files
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Long: `Show chunk and file totals for the vector store.

Examples:
  documind stats
  documind stats --format json`,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	pipeline, closeStore, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closeStore()

	stats, err := pipeline.GetStatistics()
	if err != nil {
		return fmt.Errorf("collecting statistics: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Chunks: %d\n", stats.TotalChunks)
	fmt.Fprintf(cmd.OutOrStdout(), "Files:  %d\n", stats.UniqueFiles)
	for _, name := range stats.FileNames {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
	return nil
}
