package token

import (
	"rpncalc/internal/source"
)

// Precedence ranks. Parentheses carry PrecParen only as a marker; the
// converter never orders them against operators by value.
const (
	PrecNone     = 0 // whitespace, EOF
	PrecOperand  = 1 // numbers, never compared
	PrecAdditive = 2 // + -
	PrecMultiply = 3 // * /
	PrecParen    = 4 // ( )
)

// Token represents a single expression token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Prec int
}

// New builds a token with the precedence implied by kind.
func New(kind Kind, span source.Span, text string) Token {
	return Token{Kind: kind, Span: span, Text: text, Prec: PrecedenceOf(kind)}
}

// PrecedenceOf returns the precedence rank of a kind.
func PrecedenceOf(kind Kind) int {
	switch kind {
	case Plus, Minus:
		return PrecAdditive
	case Star, Slash:
		return PrecMultiply
	case LParen, RParen:
		return PrecParen
	case Number:
		return PrecOperand
	default:
		return PrecNone
	}
}

// IsOperator reports whether the token is one of the binary operators + - * /.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash:
		return true
	default:
		return false
	}
}

// IsParen reports whether the token is a parenthesis.
func (t Token) IsParen() bool {
	return t.Kind == LParen || t.Kind == RParen
}

// IsTrivia reports whether the token carries no meaning for evaluation.
func (t Token) IsTrivia() bool {
	return t.Kind == Whitespace
}

func (t Token) String() string {
	return t.Kind.String() + " " + `"` + t.Text + `"`
}
