package formula

import "sort"

// Expr is a node in the whitelisted expression AST. Only the concrete types
// in this file exist; there is no call, index, or attribute syntax, so an
// expression can never reach beyond its declared operands.
type Expr interface {
	exprNode()
}

// NumberLit is a numeric literal.
type NumberLit struct {
	Value float64
}

// OperandRef references a declared operand by name.
type OperandRef struct {
	Name string
}

// UnaryExpr is a prefix + or - applied to an operand expression.
type UnaryExpr struct {
	Op   TokenType
	Expr Expr
}

// BinaryExpr is an infix arithmetic or comparison operation.
type BinaryExpr struct {
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*NumberLit) exprNode()  {}
func (*OperandRef) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}

// CollectOperands returns the distinct operand names referenced by an
// expression, in sorted order.
func CollectOperands(expr Expr) []string {
	seen := make(map[string]struct{})
	var visit func(Expr)
	visit = func(e Expr) {
		switch x := e.(type) {
		case *OperandRef:
			seen[x.Name] = struct{}{}
		case *UnaryExpr:
			visit(x.Expr)
		case *BinaryExpr:
			visit(x.Left)
			visit(x.Right)
		}
	}
	visit(expr)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
