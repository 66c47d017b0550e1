// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the calculator pipeline (source -> lexer -> postfix -> evaluator).
// They guard against panics and check that every failure is one of the
// documented error kinds.
package fuzztests
