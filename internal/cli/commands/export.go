package commands

import (
	"fmt"

	"github.com/leapstack-labs/leapbook/internal/graph"
	"github.com/spf13/cobra"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored book as a DOT interchange file",
		Long: `Export reads the persisted graph and writes it as a DOT file. The file
round-trips: importing it elsewhere reconstructs the same forest, child
order and property values included.`,
		Example: `  # Write the stored book to book.dot
  leapbook export --out book.dot`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "book.dot", "Output DOT file path")

	return cmd
}

func runExport(cmd *cobra.Command, out string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	g, err := cmdCtx.Store.LoadGraph()
	if err != nil {
		return err
	}
	if err := graph.SaveDOT(g, "book", out); err != nil {
		return fmt.Errorf("failed to export graph: %w", err)
	}

	cmdCtx.Renderer.Printf("Exported graph to %s\n", out)
	return nil
}
