package commands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leapstack-labs/leapbook/internal/graph"
	"github.com/leapstack-labs/leapbook/pkg/book"
	"github.com/leapstack-labs/leapbook/pkg/formula"
	"github.com/spf13/cobra"
)

// NewCalcCommand creates the calc command.
func NewCalcCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "calc <expression>",
		Short: "Evaluate a formula across the stored book",
		Long: `Calc attaches a formula to every node of the stored book, evaluates it,
and persists the derived property. Operands are the identifiers used in
the expression, resolved per node (node-local value first, then the
book's globals). Nodes where an operand does not resolve are reported
and skipped; the rest still evaluate.`,
		Example: `  # Derive a margin property on every node that has revenue and cogs
  leapbook calc --name margin "(revenue - cogs) / revenue"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, name, args[0])
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Property name the result is stored under (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runCalc(cmd *cobra.Command, name, expression string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	expr, err := formula.Parse(expression)
	if err != nil {
		return err
	}
	operands := formula.CollectOperands(expr)

	b, err := loadBook(cmdCtx.Store, "book")
	if err != nil {
		return err
	}

	f := book.Formula{Name: name, Expression: expression, Operands: operands}
	b.Walk(func(n *book.Node) bool {
		n.Formulas = append(n.Formulas, f)
		return true
	})

	engine := formula.NewEngine()
	evalErr := engine.ExecuteBook(b)

	evaluated := 0
	var batch *formula.BatchError
	if evalErr != nil && !errors.As(evalErr, &batch) {
		return evalErr
	}
	b.Walk(func(n *book.Node) bool {
		if batch == nil || batch.Failures[n.ID] == nil {
			evaluated++
		}
		return true
	})

	g, err := graph.FromBook(b)
	if err != nil {
		return err
	}
	if err := cmdCtx.Store.SaveGraph(g); err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	r := cmdCtx.Renderer
	r.Printf("Evaluated %q on %d node(s)\n", name, evaluated)
	if batch != nil {
		ids := make([]string, 0, len(batch.Failures))
		for id := range batch.Failures {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		r.Printf("Skipped %d node(s):\n", len(ids))
		for _, id := range ids {
			r.Printf("  %s: %v\n", id, batch.Failures[id])
		}
	}
	return nil
}
