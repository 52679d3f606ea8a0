// ABOUTME: Ingest command loading documents into the vector store
// ABOUTME: Accepts one or more file paths, skipping unsupported types
package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/documind/documind/internal/core"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Ingest documents into the vector store",
		Long: `Parse, chunk, and store one or more documents.

Supported formats: PDF, DOCX, TXT.

Examples:
  documind ingest report.pdf
  documind ingest notes.txt handbook.docx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	pipeline, closeStore, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closeStore()

	var failures int
	for _, path := range args {
		fileName := filepath.Base(path)
		if !core.SupportedFile(fileName) {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: unsupported file type\n", fileName)
			failures++
			continue
		}

		chunks, err := pipeline.IngestFile(cmd.Context(), path, fileName)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to ingest %s: %v\n", fileName, err)
			failures++
			continue
		}

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "ingested %s (%d chunks)\n", fileName, len(chunks))
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failures, len(args))
	}
	return nil
}
