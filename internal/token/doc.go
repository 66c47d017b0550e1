// Package token defines the lexical token kinds of arithmetic expressions.
// Invariants:
//   - Token.Text is the exact source substring covered by Token.Span.
//   - Whitespace tokens are produced by the lexer but never reach the
//     postfix converter; callers drop them.
//   - Prec is only compared between operator and parenthesis tokens.
package token
