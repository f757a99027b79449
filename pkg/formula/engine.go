package formula

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapbook/pkg/book"
)

// Engine evaluates node formulas against book-resolved properties.
type Engine struct{}

// NewEngine creates a formula engine.
func NewEngine() *Engine {
	return &Engine{}
}

// ExecuteNode evaluates every formula attached to n, in declared order.
// For each formula, the evaluation scope contains exactly the declared
// operands, resolved local-then-global against b; the result overwrites
// n.Properties[formula.Name]. The first failing formula stops evaluation
// for this node and is returned (an unresolvable operand surfaces the
// resolver's PropertyNotFoundError).
func (e *Engine) ExecuteNode(n *book.Node, b *book.Book) error {
	for _, f := range n.Formulas {
		scope := make(map[string]any, len(f.Operands))
		for _, op := range f.Operands {
			v, err := b.Resolve(n, op)
			if err != nil {
				return fmt.Errorf("formula %q: %w", f.Name, err)
			}
			scope[op] = v
		}

		expr, err := Parse(f.Expression)
		if err != nil {
			return fmt.Errorf("formula %q: %w", f.Name, err)
		}
		result, err := Eval(expr, scope)
		if err != nil {
			return fmt.Errorf("formula %q: %w", f.Name, err)
		}
		n.Properties[f.Name] = result
	}
	return nil
}

// ExecuteBook evaluates formulas on every node in the forest. A failure on
// one node never aborts evaluation of the others: failures are collected
// per node id and reported together as a *BatchError (nil when every node
// succeeded).
func (e *Engine) ExecuteBook(b *book.Book) error {
	batch := &BatchError{Failures: make(map[string]error)}
	b.Walk(func(n *book.Node) bool {
		if len(n.Formulas) == 0 {
			return true
		}
		if err := e.ExecuteNode(n, b); err != nil {
			batch.Failures[n.ID] = err
		}
		return true
	})
	if len(batch.Failures) == 0 {
		return nil
	}
	return batch
}

// BatchError aggregates per-node formula failures from ExecuteBook.
type BatchError struct {
	// Failures maps node id to that node's evaluation error
	Failures map[string]error
}

func (e *BatchError) Error() string {
	ids := make([]string, 0, len(e.Failures))
	for id := range e.Failures {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var sb strings.Builder
	fmt.Fprintf(&sb, "formula evaluation failed on %d node(s):", len(ids))
	for _, id := range ids {
		fmt.Fprintf(&sb, "\n  %s: %v", id, e.Failures[id])
	}
	return sb.String()
}
