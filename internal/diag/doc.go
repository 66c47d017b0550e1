// Package diag defines the diagnostic model shared by the evaluation phases.
//
// Every failure of the pipeline is an *Error: a Diagnostic (severity, code,
// message, primary span) that also satisfies the error interface and matches
// one of the exported sentinels with errors.Is:
//
//   - ErrUnrecognizedCharacter – the lexer met a character outside the
//     supported set.
//   - ErrUnbalancedParentheses – the converter could not pair a parenthesis.
//   - ErrDivisionByZero – the evaluator divided by zero.
//   - ErrInternalEvaluation – the postfix sequence was malformed.
//
// Phases may additionally emit diagnostics through a Reporter so that the CLI
// can collect them in a Bag and render them with internal/diagfmt. Package diag
// itself performs no formatting or IO.
package diag
