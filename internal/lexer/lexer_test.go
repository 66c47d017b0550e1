package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"rpncalc/internal/diag"
	"rpncalc/internal/lexer"
	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

// makeTestFile создаёт виртуальный файл для тестовой строки
func makeTestFile(input string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.expr", []byte(input)))
}

// expectTokens проверяет последовательность значимых токенов
func expectTokens(t *testing.T, input string, expected []token.Kind, texts []string) {
	t.Helper()
	tokens, err := lexer.Tokenize(makeTestFile(input), lexer.Options{})
	if err != nil {
		t.Fatalf("unexpected error for %q: %v", input, err)
	}
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens: %v", len(expected), len(tokens), input, tokens)
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("Token %d: expected %v, got %v (text: %q)", i, expected[i], tok.Kind, tok.Text)
		}
		if texts != nil && tok.Text != texts[i] {
			t.Errorf("Token %d: expected text %q, got %q", i, texts[i], tok.Text)
		}
	}
}

func TestTokenizeExpressions(t *testing.T) {
	N, P, M, S, D, L, R := token.Number, token.Plus, token.Minus, token.Star, token.Slash, token.LParen, token.RParen
	tests := []struct {
		name  string
		input string
		kinds []token.Kind
		texts []string
	}{
		{"empty", "", []token.Kind{}, nil},
		{"only spaces", "   \t ", []token.Kind{}, nil},
		{"single digit", "7", []token.Kind{N}, []string{"7"}},
		{"compact", "5*6+(2-9)", []token.Kind{N, S, N, P, L, N, M, N, R}, []string{"5", "*", "6", "+", "(", "2", "-", "9", ")"}},
		{"spaced", "6 * (52 + 3) * 4", []token.Kind{N, S, L, N, P, N, R, S, N}, []string{"6", "*", "(", "52", "+", "3", ")", "*", "4"}},
		{"division", "10/4", []token.Kind{N, D, N}, []string{"10", "/", "4"}},
		{"trailing space", "1 ", []token.Kind{N}, []string{"1"}},
		{"leading space", "  42", []token.Kind{N}, []string{"42"}},
		{"newline separated", "1\n+\n2", []token.Kind{N, P, N}, nil},
		{"adjacent parens", "(())", []token.Kind{L, L, R, R}, nil},
		{"leading zeros kept verbatim", "007", []token.Kind{N}, []string{"007"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTokens(t, tt.input, tt.kinds, tt.texts)
		})
	}
}

func TestDigitsOnlyIsSingleNumber(t *testing.T) {
	for _, input := range []string{"0", "9", "12345", strings.Repeat("9", 200)} {
		expectTokens(t, input, []token.Kind{token.Number}, []string{input})
	}
}

func TestWhitespaceTokensAreEmitted(t *testing.T) {
	tokens, err := lexer.All(makeTestFile("1  + 2"), lexer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.Number, "1"},
		{token.Whitespace, "  "},
		{token.Plus, "+"},
		{token.Whitespace, " "},
		{token.Number, "2"},
		{token.EOF, ""},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Text != w.text {
			t.Errorf("token %d: expected %v %q, got %v %q", i, w.kind, w.text, tokens[i].Kind, tokens[i].Text)
		}
	}
}

func TestSpansMatchText(t *testing.T) {
	file := makeTestFile("12 + (345)")
	tokens, err := lexer.All(file, lexer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tok := range tokens {
		if got := file.Slice(tok.Span); got != tok.Text {
			t.Errorf("%v: span %v covers %q, text is %q", tok.Kind, tok.Span, got, tok.Text)
		}
	}
	if last := tokens[len(tokens)-1]; last.Span.Start != uint32(len(file.Content)) {
		t.Errorf("EOF should sit at end of input, got %v", last.Span)
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx := lexer.New(makeTestFile("3"), lexer.Options{})
	if tok, err := lx.Next(); err != nil || tok.Kind != token.Number {
		t.Fatalf("expected number, got %v %v", tok, err)
	}
	for range 3 {
		tok, err := lx.Next()
		if err != nil || tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v %v", tok, err)
		}
	}
}

func TestResetRestartsLexing(t *testing.T) {
	lx := lexer.New(makeTestFile("8-3"), lexer.Options{})
	first, _ := lx.Next()
	_, _ = lx.Next()
	lx.Reset()
	again, err := lx.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != first {
		t.Fatalf("expected %v after reset, got %v", first, again)
	}
}

func TestUnrecognizedCharacter(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart uint32
		wantEnd   uint32
	}{
		{"letter", "2+a", 2, 3},
		{"letter inside number", "12x3", 2, 3},
		{"after whitespace", "1 $", 2, 3},
		{"decimal point", "1.5", 1, 2},
		{"caret", "2^3", 1, 2},
		{"multi-byte rune", "1+é", 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := diag.NewBag(4)
			_, err := lexer.Tokenize(makeTestFile(tt.input), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
			if !errors.Is(err, diag.ErrUnrecognizedCharacter) {
				t.Fatalf("expected ErrUnrecognizedCharacter, got %v", err)
			}
			var de *diag.Error
			if !errors.As(err, &de) {
				t.Fatalf("expected *diag.Error, got %T", err)
			}
			if de.Primary.Start != tt.wantStart || de.Primary.End != tt.wantEnd {
				t.Errorf("expected span %d..%d, got %v", tt.wantStart, tt.wantEnd, de.Primary)
			}
			if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
				t.Errorf("expected one LexUnknownChar diagnostic, got %+v", bag.Items())
			}
		})
	}
}

func TestErrorIsSticky(t *testing.T) {
	lx := lexer.New(makeTestFile("?1"), lexer.Options{})
	_, first := lx.Next()
	_, second := lx.Next()
	if first == nil || second == nil || first != second {
		t.Fatalf("expected the same error twice, got %v and %v", first, second)
	}
	if lx.State() != lexer.StateReject {
		t.Fatalf("expected Reject state, got %v", lx.State())
	}
}

func TestTokenizeRange(t *testing.T) {
	file := makeTestFile("1+2\n3 * 4\n")
	tokens, err := lexer.TokenizeRange(file, source.Span{Start: 4, End: 9}, lexer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 3 || tokens[0].Text != "3" || tokens[2].Text != "4" {
		t.Fatalf("unexpected tokens %v", tokens)
	}
	if tokens[0].Span.Start != 4 || tokens[2].Span.End != 9 {
		t.Fatalf("spans must stay file-relative, got %v and %v", tokens[0].Span, tokens[2].Span)
	}

	lx := lexer.NewRange(file, source.Span{Start: 4, End: 9}, lexer.Options{})
	first, _ := lx.Next()
	lx.Reset()
	again, _ := lx.Next()
	if first != again || first.Span.Start != 4 {
		t.Fatalf("reset must return to the range start, got %v then %v", first, again)
	}
}
