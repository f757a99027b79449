package formula

import "testing"

func TestLexer_TokenStream(t *testing.T) {
	input := "(revenue - cogs) / revenue >= 0.25"

	want := []Token{
		{Type: LPAREN, Literal: "("},
		{Type: IDENT, Literal: "revenue"},
		{Type: MINUS, Literal: "-"},
		{Type: IDENT, Literal: "cogs"},
		{Type: RPAREN, Literal: ")"},
		{Type: SLASH, Literal: "/"},
		{Type: IDENT, Literal: "revenue"},
		{Type: GE, Literal: ">="},
		{Type: NUMBER, Literal: "0.25"},
		{Type: EOF},
	}

	l := NewLexer(input)
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.Type || tok.Literal != w.Literal {
			t.Fatalf("token %d: got %s %q, want %s %q", i, tok.Type, tok.Literal, w.Type, w.Literal)
		}
	}
}

func TestLexer_ComparisonSpellings(t *testing.T) {
	tests := []struct {
		input string
		typ   TokenType
	}{
		{"==", EQ},
		{"=", EQ},
		{"!=", NE},
		{"<>", NE},
		{"<", LT},
		{">", GT},
		{"<=", LE},
		{">=", GE},
	}
	for _, tt := range tests {
		tok := NewLexer(tt.input).NextToken()
		if tok.Type != tt.typ {
			t.Fatalf("input %q: got %s, want %s", tt.input, tok.Type, tt.typ)
		}
	}
}

func TestLexer_IllegalCharacters(t *testing.T) {
	for _, input := range []string{"a & b", "x!", "$amount", "a;b"} {
		l := NewLexer(input)
		sawIllegal := false
		for {
			tok := l.NextToken()
			if tok.Type == ILLEGAL {
				sawIllegal = true
				break
			}
			if tok.Type == EOF {
				break
			}
		}
		if !sawIllegal {
			t.Fatalf("input %q: expected an ILLEGAL token", input)
		}
	}
}

func TestLexer_Positions(t *testing.T) {
	l := NewLexer("a + bb")
	a := l.NextToken()
	plus := l.NextToken()
	bb := l.NextToken()
	if a.Pos.Column != 1 || plus.Pos.Column != 3 || bb.Pos.Column != 5 {
		t.Fatalf("unexpected columns: %d %d %d", a.Pos.Column, plus.Pos.Column, bb.Pos.Column)
	}
}
