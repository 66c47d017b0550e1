package diag

import (
	"errors"
	"fmt"
	"testing"

	"rpncalc/internal/source"
)

func TestErrorMatchesSentinelByCode(t *testing.T) {
	err := Errorf(SynUnbalancedParen, source.Span{Start: 4, End: 5}, "no matching %q", "(")
	wrapped := fmt.Errorf("convert: %w", err)

	if !errors.Is(wrapped, ErrUnbalancedParentheses) {
		t.Fatalf("expected wrapped error to match ErrUnbalancedParentheses")
	}
	if errors.Is(wrapped, ErrDivisionByZero) {
		t.Fatalf("unbalanced parentheses must not match division by zero")
	}

	var de *Error
	if !errors.As(wrapped, &de) {
		t.Fatalf("expected errors.As to find *Error")
	}
	if de.Primary.Start != 4 || de.Message != `no matching "("` {
		t.Fatalf("unexpected diagnostic: %+v", de.Diagnostic)
	}
	if got, want := de.Error(), `SYN2006 at 4..5: no matching "("`; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(IOLoadFileError, cause, "%s: cannot load batch file", "exprs.txt")

	if !errors.Is(err, ErrLoadFile) || errors.Is(err, ErrConfig) {
		t.Fatalf("expected match by code only, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	if got, want := err.Error(), "IO4001: exprs.txt: cannot load batch file: permission denied"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got, want := Wrap(IOConfigError, nil, "bad").Error(), "IO4002: bad"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynUnbalancedParen: "SYN2006",
		EvalDivisionByZero: "EVAL3001",
		IOConfigError:      "IO4002",
		UnknownCode:        "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d: expected %s, got %s", code, want, got)
		}
	}
	if got := Code(999).Title(); got != "Unknown error" {
		t.Errorf("unexpected title for unknown code: %q", got)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	ReportError(r, EvalDivisionByZero, source.Span{Start: 9, End: 10}, "late").Emit()
	ReportWarning(r, LexInfo, source.Span{Start: 1, End: 2}, "early").Emit()
	ReportError(r, EvalInternal, source.Span{Start: 0, End: 1}, "dropped").Emit()

	if bag.Len() != 2 {
		t.Fatalf("expected limit of 2 diagnostics, got %d", bag.Len())
	}
	bag.Sort()
	if bag.Items()[0].Message != "early" {
		t.Fatalf("expected sorted by start offset, got %+v", bag.Items())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected both errors and warnings")
	}
}

func TestBagAddError(t *testing.T) {
	bag := NewBag(10)
	bag.AddError(Errorf(LexUnknownChar, source.Span{Start: 1, End: 2}, "unrecognized character %q", '$'))
	bag.AddError(errors.New("plain failure"))
	bag.AddError(nil)

	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
	if bag.Items()[1].Code != UnknownCode {
		t.Fatalf("plain errors should map to UnknownCode")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, SynUnbalancedParen, source.Span{}, "unbalanced").
		WithNote(source.Span{Start: 3, End: 4}, "opened here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected single emission, got %d", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected note to be carried")
	}
	if !errors.Is(b.Err(), ErrUnbalancedParentheses) {
		t.Fatalf("builder error should match sentinel")
	}
}
