package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/leapbook/internal/cli/output"
	"github.com/leapstack-labs/leapbook/pkg/book"
	"github.com/spf13/cobra"
)

// nodeView is the JSON projection of a node for the show command.
type nodeView struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Depth      int            `json:"depth"`
	Properties map[string]any `json:"properties,omitempty"`
	Children   []*nodeView    `json:"children,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand() *cobra.Command {
	var bookName string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored book's nodes and properties",
		Long: `Show renders the persisted forest: every node with its depth, display
name, and properties.

Output adapts to environment:
  - Terminal: table output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, bookName)
		},
	}

	cmd.Flags().StringVar(&bookName, "book", "book", "Name for the reconstructed book")

	return cmd
}

func runShow(cmd *cobra.Command, bookName string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	b, err := loadBook(cmdCtx.Store, bookName)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		views := make([]*nodeView, 0, len(b.Roots))
		for _, root := range b.Roots {
			views = append(views, viewOf(root, 0))
		}
		return r.JSON(map[string]any{"name": b.Name, "roots": views})
	default:
		return showTable(b, r)
	}
}

func viewOf(n *book.Node, depth int) *nodeView {
	v := &nodeView{ID: n.ID, Name: n.Name, Depth: depth, Properties: n.Properties}
	for _, c := range n.Children {
		v.Children = append(v.Children, viewOf(c, depth+1))
	}
	return v
}

func showTable(b *book.Book, r *output.Renderer) error {
	r.Header(1, fmt.Sprintf("%s (%d nodes)", b.Name, b.Len()))

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.AppendHeader(table.Row{"Node", "ID", "Properties"})

	var walk func(n *book.Node, depth int)
	walk = func(n *book.Node, depth int) {
		t.AppendRow(table.Row{
			strings.Repeat("  ", depth) + n.Name,
			n.ID,
			formatProps(n.Properties),
		})
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, root := range b.Roots {
		walk(root, 0)
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	return nil
}

func formatProps(props map[string]any) string {
	if len(props) == 0 {
		return ""
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, props[k]))
	}
	return strings.Join(parts, ", ")
}
