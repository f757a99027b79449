package formula

import (
	"fmt"
	"strconv"
)

// Operator precedence levels, lowest first.
const (
	precNone       = 0
	precComparison = 1 // == != < > <= >=
	precAddition   = 2 // + -
	precMultiply   = 3 // * /
	precUnary      = 4 // prefix + -
)

// Parser builds an Expr from expression text using precedence climbing.
type Parser struct {
	lexer *Lexer
	token Token
	peek  Token
}

// Parse parses an expression into its AST. A malformed expression returns
// an ExpressionError.
func Parse(input string) (Expr, error) {
	p := &Parser{lexer: NewLexer(input)}
	p.nextToken()
	p.nextToken()

	expr, err := p.parseExpression(precNone + 1)
	if err != nil {
		return nil, err
	}
	if p.token.Type != EOF {
		return nil, p.errorf("unexpected token %s after expression", p.token.Type)
	}
	return expr, nil
}

func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(format string, args ...any) *ExpressionError {
	return &ExpressionError{Pos: p.token.Pos, Message: fmt.Sprintf(format, args...)}
}

// parseExpression implements Pratt parsing: parse a prefix expression, then
// fold infix operators while their precedence is at least minPrecedence.
func (p *Parser) parseExpression(minPrecedence int) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		prec := infixPrecedence(p.token.Type)
		if prec < minPrecedence {
			return left, nil
		}
		op := p.token.Type
		p.nextToken()
		right, err := p.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

// parsePrefix parses unary operators and primary expressions.
func (p *Parser) parsePrefix() (Expr, error) {
	switch p.token.Type {
	case MINUS, PLUS:
		op := p.token.Type
		p.nextToken()
		expr, err := p.parseExpression(precUnary)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Expr: expr}, nil
	default:
		return p.parsePrimary()
	}
}

// parsePrimary parses literals, operand references, and parenthesized
// expressions.
func (p *Parser) parsePrimary() (Expr, error) {
	switch p.token.Type {
	case NUMBER:
		v, err := strconv.ParseFloat(p.token.Literal, 64)
		if err != nil {
			return nil, p.errorf("invalid number literal %q", p.token.Literal)
		}
		p.nextToken()
		return &NumberLit{Value: v}, nil

	case IDENT:
		name := p.token.Literal
		p.nextToken()
		return &OperandRef{Name: name}, nil

	case LPAREN:
		p.nextToken()
		expr, err := p.parseExpression(precNone + 1)
		if err != nil {
			return nil, err
		}
		if p.token.Type != RPAREN {
			return nil, p.errorf("unexpected token %s, expected )", p.token.Type)
		}
		p.nextToken()
		return expr, nil

	case EOF:
		return nil, p.errorf("unexpected end of expression")

	default:
		return nil, p.errorf("unexpected token %q", p.token.Literal)
	}
}

// infixPrecedence returns the precedence of a token as an infix operator,
// or precNone if it is not one.
func infixPrecedence(t TokenType) int {
	switch t {
	case EQ, NE, LT, GT, LE, GE:
		return precComparison
	case PLUS, MINUS:
		return precAddition
	case STAR, SLASH:
		return precMultiply
	default:
		return precNone
	}
}
