package rpn_test

import (
	"errors"
	"testing"

	"rpncalc/internal/diag"
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

func TestToPostfix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"42", "42"},
		{"2+3", "2 3 +"},
		{"2+3*4", "2 3 4 * +"},
		{"2*3+4", "2 3 * 4 +"},
		{"8-3-2", "8 3 - 2 -"},
		{"16/4/2", "16 4 / 2 /"},
		{"1+2*3*4", "1 2 3 * 4 * +"},
		{"1-2+3", "1 2 - 3 +"},
		{"5*6+(2-9)", "5 6 * 2 9 - +"},
		{"6 * (52 + 3) * 4", "6 52 3 + * 4 *"},
		{"(1+2)*(3+4)", "1 2 + 3 4 + *"},
		{"((7))", "7"},
		{"2*(3+4*(5-1))", "2 3 4 5 1 - * + *"},
		{"1+(2*3-4)/5", "1 2 3 * 4 - 5 / +"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			q, err := rpn.ToPostfix(lex(t, tt.input), rpn.Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := q.String(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestPostfixHasNoParentheses(t *testing.T) {
	q, err := rpn.ToPostfix(lex(t, "((1+2)*(3-(4/5)))"), rpn.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range q.Tokens() {
		if tok.IsParen() {
			t.Fatalf("parenthesis %v leaked into postfix output %q", tok, q.String())
		}
	}
}

func TestUnbalancedParentheses(t *testing.T) {
	tests := []struct {
		input     string
		wantStart uint32
	}{
		{"(2+3", 0},
		{"2+3)", 3},
		{"(1+2))", 5},
		{")", 0},
		{"((1)", 0},
		{"1+(2*(3)", 2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			bag := diag.NewBag(4)
			q, err := rpn.ToPostfix(lex(t, tt.input), rpn.Options{Reporter: diag.BagReporter{Bag: bag}})
			if !errors.Is(err, diag.ErrUnbalancedParentheses) {
				t.Fatalf("expected ErrUnbalancedParentheses, got %v", err)
			}
			if q != nil {
				t.Fatalf("no partial queue may be returned, got %q", q.String())
			}
			var de *diag.Error
			if errors.As(err, &de) && de.Primary.Start != tt.wantStart {
				t.Errorf("expected error at %d, got %v", tt.wantStart, de.Primary)
			}
			if bag.Len() != 1 {
				t.Errorf("expected one diagnostic, got %d", bag.Len())
			}
		})
	}
}

func TestUnexpectedTokenRejected(t *testing.T) {
	tokens := []token.Token{
		token.New(token.Number, source.Span{Start: 0, End: 1}, "1"),
		token.New(token.Whitespace, source.Span{Start: 1, End: 2}, " "),
	}
	_, err := rpn.ToPostfix(tokens, rpn.Options{})
	var de *diag.Error
	if !errors.As(err, &de) || de.Code != diag.SynUnexpectedToken {
		t.Fatalf("expected SynUnexpectedToken, got %v", err)
	}
}

func TestEOFStopsConversion(t *testing.T) {
	tokens := append(lex(t, "1+2"), token.New(token.EOF, source.Span{Start: 3, End: 3}, ""))
	q, err := rpn.ToPostfix(tokens, rpn.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.String() != "1 2 +" {
		t.Fatalf("unexpected postfix %q", q.String())
	}
}

func TestQueueFIFO(t *testing.T) {
	q := rpn.NewQueue()
	for _, text := range []string{"1", "2", "+"} {
		q.Push(token.Token{Text: text})
	}
	if q.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", q.Len())
	}
	first, _ := q.Pop()
	if first.Text != "1" {
		t.Fatalf("expected head %q, got %q", "1", first.Text)
	}
	if q.String() != "2 +" {
		t.Fatalf("unexpected remaining %q", q.String())
	}
	q.Pop()
	q.Pop()
	if _, ok := q.Pop(); ok {
		t.Fatalf("pop on empty queue must fail")
	}
}

func TestStackLIFO(t *testing.T) {
	var s rpn.Stack
	s.Push(token.Token{Text: "a"})
	s.Push(token.Token{Text: "b"})
	if top, _ := s.Peek(); top.Text != "b" {
		t.Fatalf("expected top b, got %q", top.Text)
	}
	s.Pop()
	if top, _ := s.Pop(); top.Text != "a" {
		t.Fatalf("expected a, got %q", top.Text)
	}
	if _, ok := s.Pop(); ok || s.Len() != 0 {
		t.Fatalf("stack should be empty")
	}
}
