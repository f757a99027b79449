package formula

import "fmt"

// ExpressionError reports a malformed expression with position information.
type ExpressionError struct {
	Pos     Position
	Message string
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("expression error at column %d: %s", e.Pos.Column, e.Message)
}

// ArithmeticError reports a failure during evaluation, such as division by
// zero or a non-numeric operand where a number is required.
type ArithmeticError struct {
	Message string
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("arithmetic error: %s", e.Message)
}

// UnknownOperandError reports an identifier that is not in the evaluation
// scope. Formulas may only reference their declared operands.
type UnknownOperandError struct {
	Name string
}

func (e *UnknownOperandError) Error() string {
	return fmt.Sprintf("unknown operand %q: not in declared operand scope", e.Name)
}
