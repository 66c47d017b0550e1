package eval_test

import (
	"errors"
	"math/big"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"rpncalc/internal/diag"
	"rpncalc/internal/eval"
	"rpncalc/internal/lexer"
	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

func lex(t *testing.T, input string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	tokens, err := lexer.Tokenize(fs.Get(fs.AddVirtual("test.expr", []byte(input))), lexer.Options{})
	if err != nil {
		t.Fatalf("lex %q: %v", input, err)
	}
	return tokens
}

func evaluate(t *testing.T, input string) (eval.Value, error) {
	t.Helper()
	q, err := rpn.ToPostfix(lex(t, input), rpn.Options{})
	if err != nil {
		t.Fatalf("convert %q: %v", input, err)
	}
	return eval.Evaluate(q, eval.Options{})
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		isInt bool
	}{
		{"5*6+(2-9)", "23", true},
		{"6 * (52 + 3) * 4", "1320", true},
		{"6 * 4", "24", true},
		{"6*4", "24", true},
		{"10/4", "2.5", false},
		{"8/4", "2", true},
		{"1/3", "0.3333333333333333", false},
		{"(1/3)*3", "1", true},
		{"2-5", "-3", true},
		{"8-3-2", "3", true},
		{"16/4/2", "2", true},
		{"1+2*3*4", "25", true},
		{"99999999999999999999*99999999999999999999", "9999999999999999999800000000000000000001", true},
		{"0", "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := evaluate(t, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			if got.IsInt() != tt.isInt {
				t.Fatalf("IsInt: expected %v for %s", tt.isInt, got)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	for _, input := range []string{"4/0", "1/(2-2)", "5/(0*7)+1"} {
		t.Run(input, func(t *testing.T) {
			bag := diag.NewBag(4)
			q, err := rpn.ToPostfix(lex(t, input), rpn.Options{})
			if err != nil {
				t.Fatalf("convert: %v", err)
			}
			_, err = eval.Evaluate(q, eval.Options{Reporter: diag.BagReporter{Bag: bag}})
			if !errors.Is(err, diag.ErrDivisionByZero) {
				t.Fatalf("expected ErrDivisionByZero, got %v", err)
			}
			if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
				t.Fatalf("expected one diagnostic with a note, got %+v", bag.Items())
			}
		})
	}
}

func TestMalformedPostfix(t *testing.T) {
	num := func(s string) token.Token { return token.New(token.Number, source.Span{}, s) }
	op := func(k token.Kind) token.Token { return token.New(k, source.Span{}, k.Symbol()) }

	tests := []struct {
		name   string
		tokens []token.Token
	}{
		{"empty", nil},
		{"two values", []token.Token{num("1"), num("2")}},
		{"lonely operator", []token.Token{op(token.Plus)}},
		{"missing left operand", []token.Token{num("1"), op(token.Star)}},
		{"parenthesis", []token.Token{num("1"), op(token.LParen)}},
		{"bad digits", []token.Token{num("1x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := eval.Evaluate(rpn.NewQueue(tt.tokens...), eval.Options{})
			if !errors.Is(err, diag.ErrInternalEvaluation) {
				t.Fatalf("expected ErrInternalEvaluation, got %v", err)
			}
		})
	}
}

func TestEvaluateDrainsQueue(t *testing.T) {
	q, err := rpn.ToPostfix(lex(t, "1+2"), rpn.Options{})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := eval.Evaluate(q, eval.Options{}); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if q.Len() != 0 {
		t.Fatalf("queue should be drained, %d left", q.Len())
	}
}

// refParser is a precedence-climbing infix evaluator used as an oracle.
type refParser struct {
	toks []token.Token
	pos  int
	div0 bool
}

func (p *refParser) peek() token.Kind {
	if p.pos >= len(p.toks) {
		return token.EOF
	}
	return p.toks[p.pos].Kind
}

func (p *refParser) expr() *big.Rat {
	acc := p.term()
	for p.peek() == token.Plus || p.peek() == token.Minus {
		k := p.peek()
		p.pos++
		rhs := p.term()
		if k == token.Plus {
			acc = new(big.Rat).Add(acc, rhs)
		} else {
			acc = new(big.Rat).Sub(acc, rhs)
		}
	}
	return acc
}

func (p *refParser) term() *big.Rat {
	acc := p.factor()
	for p.peek() == token.Star || p.peek() == token.Slash {
		k := p.peek()
		p.pos++
		rhs := p.factor()
		switch {
		case k == token.Star:
			acc = new(big.Rat).Mul(acc, rhs)
		case rhs.Sign() == 0:
			p.div0 = true
		default:
			acc = new(big.Rat).Quo(acc, rhs)
		}
	}
	return acc
}

func (p *refParser) factor() *big.Rat {
	tok := p.toks[p.pos]
	p.pos++
	if tok.Kind == token.LParen {
		v := p.expr()
		p.pos++ // ')'
		return v
	}
	n, _ := new(big.Int).SetString(tok.Text, 10)
	return new(big.Rat).SetInt(n)
}

func genExpr(r *rand.Rand, depth int) string {
	if depth == 0 || r.IntN(3) == 0 {
		return strconv.Itoa(r.IntN(20))
	}
	ops := []string{"+", "-", "*", "/"}
	left := genExpr(r, depth-1)
	right := genExpr(r, depth-1)
	if r.IntN(2) == 0 {
		left = "(" + left + ")"
	}
	if r.IntN(2) == 0 {
		right = "(" + right + ")"
	}
	sep := strings.Repeat(" ", r.IntN(2))
	return left + sep + ops[r.IntN(len(ops))] + sep + right
}

func TestPostfixMatchesReferenceEvaluator(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := range 500 {
		input := genExpr(r, 4)
		tokens := lex(t, input)

		ref := &refParser{toks: tokens}
		want := ref.expr()

		q, err := rpn.ToPostfix(tokens, rpn.Options{})
		if err != nil {
			t.Fatalf("#%d %q: convert: %v", i, input, err)
		}
		got, err := eval.Evaluate(q, eval.Options{})
		if ref.div0 {
			if !errors.Is(err, diag.ErrDivisionByZero) {
				t.Fatalf("#%d %q: expected division by zero, got %v (%v)", i, input, got, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("#%d %q: evaluate: %v", i, input, err)
		}
		if got.Rat().Cmp(want) != 0 {
			t.Fatalf("#%d %q: expected %s, got %s", i, input, want.RatString(), got.Rat().RatString())
		}
	}
}

func TestWhitespaceDoesNotChangeResult(t *testing.T) {
	pairs := [][2]string{
		{"6*4", "6 * 4"},
		{"5*6+(2-9)", " 5 * 6 + ( 2 - 9 ) "},
		{"10/4", "10\t/\n4"},
	}
	for _, p := range pairs {
		a, errA := evaluate(t, p[0])
		b, errB := evaluate(t, p[1])
		if errA != nil || errB != nil {
			t.Fatalf("unexpected errors: %v, %v", errA, errB)
		}
		if !a.Equal(b) {
			t.Fatalf("%q = %s but %q = %s", p[0], a, p[1], b)
		}
	}
}

func TestValueZero(t *testing.T) {
	var v eval.Value
	if !v.IsZero() || !v.IsInt() || v.String() != "0" {
		t.Fatalf("zero Value should behave as integer 0, got %s", v)
	}
	if !eval.Int(7).Equal(eval.Int(7)) || eval.Int(7).Float64() != 7 {
		t.Fatalf("Int(7) mismatch")
	}
}
