package formula

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leapbook/pkg/book"
)

func engineTestBook(t *testing.T) (*book.Book, *book.Node, *book.Node) {
	t.Helper()

	healthy := book.NewNodeWithID("healthy", "Healthy Unit")
	healthy.Properties["revenue"] = 100.0
	healthy.Properties["cogs"] = 60.0

	broken := book.NewNodeWithID("broken", "Broken Unit")
	broken.Properties["revenue"] = 0.0
	broken.Properties["cogs"] = 60.0

	b, err := book.NewBook("units", healthy, broken)
	if err != nil {
		t.Fatalf("failed to build book: %v", err)
	}
	return b, healthy, broken
}

func marginFormula() book.Formula {
	return book.Formula{
		Name:       "margin",
		Expression: "(revenue - cogs) / revenue",
		Operands:   []string{"revenue", "cogs"},
	}
}

func TestExecuteNode_WritesResult(t *testing.T) {
	b, healthy, _ := engineTestBook(t)
	healthy.Formulas = append(healthy.Formulas, marginFormula())

	if err := NewEngine().ExecuteNode(healthy, b); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if healthy.Properties["margin"] != 0.4 {
		t.Fatalf("expected margin 0.4, got %v", healthy.Properties["margin"])
	}
}

func TestExecuteNode_OverwritesPreviousResult(t *testing.T) {
	b, healthy, _ := engineTestBook(t)
	healthy.Properties["margin"] = "stale"
	healthy.Formulas = append(healthy.Formulas, marginFormula())

	if err := NewEngine().ExecuteNode(healthy, b); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if healthy.Properties["margin"] != 0.4 {
		t.Fatalf("expected recomputed margin, got %v", healthy.Properties["margin"])
	}
}

func TestExecuteNode_GlobalOperands(t *testing.T) {
	b, healthy, _ := engineTestBook(t)
	b.Globals["tax_rate"] = 0.2
	healthy.Formulas = append(healthy.Formulas, book.Formula{
		Name:       "tax",
		Expression: "revenue * tax_rate",
		Operands:   []string{"revenue", "tax_rate"},
	})

	if err := NewEngine().ExecuteNode(healthy, b); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if healthy.Properties["tax"] != 20.0 {
		t.Fatalf("expected tax 20, got %v", healthy.Properties["tax"])
	}
}

func TestExecuteNode_MissingOperand(t *testing.T) {
	b, healthy, _ := engineTestBook(t)
	healthy.Formulas = append(healthy.Formulas, book.Formula{
		Name:       "x",
		Expression: "revenue + ghost",
		Operands:   []string{"revenue", "ghost"},
	})

	err := NewEngine().ExecuteNode(healthy, b)
	var notFound *book.PropertyNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected PropertyNotFoundError, got %v", err)
	}
	if _, ok := healthy.Properties["x"]; ok {
		t.Fatal("failed formula should not have written a result")
	}
}

func TestExecuteNode_UndeclaredOperandIsOutOfScope(t *testing.T) {
	// cogs exists on the node but is not declared, so the expression
	// cannot see it.
	b, healthy, _ := engineTestBook(t)
	healthy.Formulas = append(healthy.Formulas, book.Formula{
		Name:       "margin",
		Expression: "(revenue - cogs) / revenue",
		Operands:   []string{"revenue"},
	})

	err := NewEngine().ExecuteNode(healthy, b)
	var unknown *UnknownOperandError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownOperandError, got %v", err)
	}
}

func TestExecuteBook_IsolatesFailures(t *testing.T) {
	b, healthy, broken := engineTestBook(t)
	healthy.Formulas = append(healthy.Formulas, marginFormula())
	broken.Formulas = append(broken.Formulas, marginFormula()) // divides by zero

	err := NewEngine().ExecuteBook(b)
	var batch *BatchError
	if !errors.As(err, &batch) {
		t.Fatalf("expected BatchError, got %v", err)
	}
	if len(batch.Failures) != 1 {
		t.Fatalf("expected one failure, got %d", len(batch.Failures))
	}
	if _, ok := batch.Failures["broken"]; !ok {
		t.Fatalf("expected failure for node broken, got %v", batch.Failures)
	}

	// The healthy node was still evaluated.
	if healthy.Properties["margin"] != 0.4 {
		t.Fatalf("expected healthy node result, got %v", healthy.Properties["margin"])
	}
}

func TestExecuteBook_AllHealthy(t *testing.T) {
	b, healthy, broken := engineTestBook(t)
	broken.Properties["revenue"] = 80.0
	healthy.Formulas = append(healthy.Formulas, marginFormula())
	broken.Formulas = append(broken.Formulas, marginFormula())

	if err := NewEngine().ExecuteBook(b); err != nil {
		t.Fatalf("expected clean run, got %v", err)
	}
	if broken.Properties["margin"] != 0.25 {
		t.Fatalf("expected margin 0.25, got %v", broken.Properties["margin"])
	}
}
