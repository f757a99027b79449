// Package formula implements the whitelisted expression engine that derives
// node properties from other properties. The grammar is deliberately small:
// numeric literals, named operand references, + - * /, parentheses, and
// comparison operators. Nothing else parses, so formula text can never
// reach arbitrary names or code.
package formula

import "fmt"

// TokenType identifies a lexical token.
type TokenType int

// Token types.
const (
	EOF TokenType = iota
	ILLEGAL

	NUMBER
	IDENT

	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	LPAREN // (
	RPAREN // )

	EQ // ==
	NE // !=
	LT // <
	GT // >
	LE // <=
	GE // >=
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",
	NUMBER:  "NUMBER",
	IDENT:   "IDENT",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	LPAREN:  "(",
	RPAREN:  ")",
	EQ:      "==",
	NE:      "!=",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",
}

// String returns a printable name for the token type.
func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Position is a 1-based location in the expression text.
type Position struct {
	Column int
}

// Token is a lexed token with its literal text and position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
