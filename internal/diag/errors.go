package diag

import (
	"fmt"

	"rpncalc/internal/source"
)

// Error is a diagnostic that aborted a pipeline phase. Cause is set for
// I/O and configuration failures that have no source position.
type Error struct {
	Diagnostic
	Cause error
}

// Sentinels for errors.Is. They match any *Error carrying the same code.
var (
	ErrUnrecognizedCharacter = &Error{Diagnostic: Diagnostic{Severity: SevError, Code: LexUnknownChar, Message: "unrecognized character"}}
	ErrUnbalancedParentheses = &Error{Diagnostic: Diagnostic{Severity: SevError, Code: SynUnbalancedParen, Message: "unbalanced parentheses"}}
	ErrDivisionByZero        = &Error{Diagnostic: Diagnostic{Severity: SevError, Code: EvalDivisionByZero, Message: "division by zero"}}
	ErrInternalEvaluation    = &Error{Diagnostic: Diagnostic{Severity: SevError, Code: EvalInternal, Message: "internal evaluation error"}}
	ErrLoadFile              = &Error{Diagnostic: Diagnostic{Severity: SevError, Code: IOLoadFileError, Message: "failed to load file"}}
	ErrConfig                = &Error{Diagnostic: Diagnostic{Severity: SevError, Code: IOConfigError, Message: "configuration error"}}
)

// Errorf builds an *Error for code at primary.
func Errorf(code Code, primary source.Span, format string, args ...any) *Error {
	return &Error{Diagnostic: NewError(code, primary, fmt.Sprintf(format, args...))}
}

// Wrap builds a positionless *Error for code that keeps cause for errors.Is
// and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Diagnostic: NewError(code, source.Span{}, fmt.Sprintf(format, args...)), Cause: cause}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s at %d..%d: %s", e.Code.ID(), e.Primary.Start, e.Primary.End, e.Message)
	if e.Primary == (source.Span{}) {
		msg = fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by diagnostic code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || e == nil {
		return false
	}
	return t.Code == e.Code
}

// Report forwards the error to r as a diagnostic. A nil reporter is ignored.
func (e *Error) Report(r Reporter) {
	if r == nil || e == nil {
		return
	}
	r.Report(e.Code, e.Severity, e.Primary, e.Message, e.Notes)
}
