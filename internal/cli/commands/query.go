package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapbook/internal/cli/output"
	intconfig "github.com/leapstack-labs/leapbook/internal/config"
	"github.com/leapstack-labs/leapbook/internal/index"
	"github.com/spf13/cobra"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Similarity search over the stored book",
		Long: `Query embeds a text projection of every stored node, embeds the query
text, and returns the nearest nodes by cosine similarity. Requires a
reachable embeddings backend (see the embeddings section of
leapbook.yaml).`,
		Example: `  # Find nodes related to vehicles
  leapbook query "company cars and trucks" --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of results")

	return cmd
}

func runQuery(cmd *cobra.Command, text string, limit int) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	b, err := loadBook(cmdCtx.Store, "book")
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(cmdCtx.Cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	vectors := index.NewStore(embedder, cmdCtx.Logger)
	if err := vectors.CreateCollection(intconfig.DefaultCollection); err != nil {
		return err
	}
	if err := vectors.AddBook(ctx, intconfig.DefaultCollection, b); err != nil {
		return fmt.Errorf("failed to index book: %w", err)
	}

	results, err := vectors.Query(ctx, intconfig.DefaultCollection, text, limit)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(results)
	}

	r.Header(1, fmt.Sprintf("Results for %q", text))
	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.AppendHeader(table.Row{"Score", "Node", "Name"})
	for _, res := range results {
		name := ""
		if n, err := b.FindNode(res.NodeID); err == nil {
			name = n.Name
		}
		t.AppendRow(table.Row{fmt.Sprintf("%.4f", res.Score), res.NodeID, name})
	}
	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}
