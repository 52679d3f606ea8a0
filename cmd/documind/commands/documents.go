// ABOUTME: Documents command group for listing and deleting stored files
// ABOUTME: Mirrors the HTTP admin surface for local use
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewDocumentsCmd creates the documents command group
func NewDocumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Manage stored documents",
	}

	cmd.AddCommand(newDocumentsListCmd())
	cmd.AddCommand(newDocumentsDeleteCmd())

	return cmd
}

func newDocumentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents with chunk counts",
		Long: `List every file in the vector store and its chunk count.

Examples:
  documind documents list
  documind documents list --format json`,
		RunE: runDocumentsList,
	}
}

func runDocumentsList(cmd *cobra.Command, args []string) error {
	pipeline, closeStore, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closeStore()

	list, err := pipeline.ListDocuments()
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	if list.TotalCount == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents stored")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FILE\tCHUNKS\n")
	for _, file := range list.Files {
		fmt.Fprintf(w, "%s\t%d\n", file.FileName, file.ChunkCount)
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d chunk(s) across %d file(s)\n", list.TotalCount, list.UniqueFiles)
	}
	return nil
}

func newDocumentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file-name>",
		Short: "Delete all chunks for a file",
		Long: `Remove every stored chunk belonging to the named file.

Examples:
  documind documents delete report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: runDocumentsDelete,
	}
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	pipeline, closeStore, err := buildPipeline()
	if err != nil {
		return err
	}
	defer closeStore()

	result, err := pipeline.DeleteDocument(args[0])
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	}
	return nil
}
