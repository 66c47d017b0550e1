package token_test

import (
	"testing"

	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.New(k, source.Span{Start: 0, End: 1}, k.Symbol())
}

func TestPrecedenceTable(t *testing.T) {
	tests := []struct {
		kind token.Kind
		want int
	}{
		{token.Plus, 2},
		{token.Minus, 2},
		{token.Star, 3},
		{token.Slash, 3},
		{token.LParen, 4},
		{token.RParen, 4},
		{token.Number, 1},
		{token.Whitespace, 0},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tok(tt.kind).Prec; got != tt.want {
				t.Fatalf("precedence of %v: expected %d, got %d", tt.kind, tt.want, got)
			}
		})
	}
}

func TestIsOperator(t *testing.T) {
	ops := []token.Kind{token.Plus, token.Minus, token.Star, token.Slash}
	for _, k := range ops {
		if !tok(k).IsOperator() {
			t.Fatalf("%v should be operator", k)
		}
	}
	non := []token.Kind{token.Number, token.LParen, token.RParen, token.Whitespace, token.EOF}
	for _, k := range non {
		if tok(k).IsOperator() {
			t.Fatalf("%v must NOT be operator", k)
		}
	}
}

func TestKindStringAndSymbol(t *testing.T) {
	if got := token.Star.String(); got != "Star" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := token.Star.Symbol(); got != "*" {
		t.Fatalf("unexpected symbol %q", got)
	}
	if got := token.Number.Symbol(); got != "" {
		t.Fatalf("numbers have no fixed symbol, got %q", got)
	}
	if got := token.Kind(200).String(); got != "Kind(?)" {
		t.Fatalf("unexpected name for unknown kind: %q", got)
	}
}
