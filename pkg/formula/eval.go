package formula

import (
	"fmt"
	"strconv"
	"strings"
)

// Eval evaluates expr against a scope of named operand values. Arithmetic
// yields float64; comparisons yield bool. Operand values are coerced to
// numbers where possible (ints, floats, numeric strings); a value that
// cannot be coerced fails with an ArithmeticError. Division by zero fails
// with an ArithmeticError rather than producing Inf/NaN.
func Eval(expr Expr, scope map[string]any) (any, error) {
	switch e := expr.(type) {
	case *NumberLit:
		return e.Value, nil

	case *OperandRef:
		v, ok := scope[e.Name]
		if !ok {
			return nil, &UnknownOperandError{Name: e.Name}
		}
		return coerceNumber(e.Name, v)

	case *UnaryExpr:
		v, err := Eval(e.Expr, scope)
		if err != nil {
			return nil, err
		}
		n, ok := v.(float64)
		if !ok {
			return nil, &ArithmeticError{Message: fmt.Sprintf("unary %s applied to non-numeric value %v", e.Op, v)}
		}
		if e.Op == MINUS {
			return -n, nil
		}
		return n, nil

	case *BinaryExpr:
		return evalBinary(e, scope)

	default:
		return nil, &ArithmeticError{Message: fmt.Sprintf("unsupported expression node %T", expr)}
	}
}

func evalBinary(e *BinaryExpr, scope map[string]any) (any, error) {
	lv, err := Eval(e.Left, scope)
	if err != nil {
		return nil, err
	}
	rv, err := Eval(e.Right, scope)
	if err != nil {
		return nil, err
	}

	l, lok := lv.(float64)
	r, rok := rv.(float64)
	if !lok || !rok {
		return nil, &ArithmeticError{Message: fmt.Sprintf("operator %s requires numeric operands, got %v and %v", e.Op, lv, rv)}
	}

	switch e.Op {
	case PLUS:
		return l + r, nil
	case MINUS:
		return l - r, nil
	case STAR:
		return l * r, nil
	case SLASH:
		if r == 0 {
			return nil, &ArithmeticError{Message: "division by zero"}
		}
		return l / r, nil
	case EQ:
		return l == r, nil
	case NE:
		return l != r, nil
	case LT:
		return l < r, nil
	case GT:
		return l > r, nil
	case LE:
		return l <= r, nil
	case GE:
		return l >= r, nil
	default:
		return nil, &ArithmeticError{Message: fmt.Sprintf("unsupported operator %s", e.Op)}
	}
}

// coerceNumber converts a scope value to float64.
func coerceNumber(name string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, &ArithmeticError{Message: fmt.Sprintf("operand %q has non-numeric value %q", name, x)}
		}
		return f, nil
	default:
		return 0, &ArithmeticError{Message: fmt.Sprintf("operand %q has non-numeric value of type %T", name, v)}
	}
}
