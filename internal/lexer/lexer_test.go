package lexer

import (
	"testing"

	"github.com/funvibe/golf/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `let x = 5 in x + 1 -- trailing comment`

	want := []token.Type{
		token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.IN,
		token.IDENT, token.PLUS, token.NUMBER, token.EOF,
	}

	l := New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt {
			t.Fatalf("token %d: want %s, got %s (%q)", i, tt, tok.Type, tok.Lexeme)
		}
	}
}

func TestNextTokenOperators(t *testing.T) {
	input := `:: ++ >> << == != <= >= -> <-`
	want := []token.Type{
		token.CONS, token.CONCAT, token.PIPE_FWD, token.PIPE_BACK,
		token.EQ, token.NOT_EQ, token.LTE, token.GTE, token.ARROW, token.LARROW,
		token.EOF,
	}
	l := New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt {
			t.Fatalf("token %d: want %s, got %s (%q)", i, tt, tok.Type, tok.Lexeme)
		}
	}
}

func TestNextTokenString(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Type != token.STRING || tok.Lexeme != "hello world" {
		t.Fatalf("got %+v", tok)
	}
}

func TestNextTokenNegativeNumberIsMinusThenNumber(t *testing.T) {
	l := New(`-5`)
	first := l.NextToken()
	second := l.NextToken()
	if first.Type != token.MINUS || second.Type != token.NUMBER || second.Lexeme != "5" {
		t.Fatalf("got %+v, %+v", first, second)
	}
}

func TestSkipsLineComments(t *testing.T) {
	l := New("1 -- ignored\n+ 2")
	var types []token.Type
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}
	want := []token.Type{token.NUMBER, token.PLUS, token.NUMBER, token.EOF}
	if len(types) != len(want) {
		t.Fatalf("want %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("want %v, got %v", want, types)
		}
	}
}
