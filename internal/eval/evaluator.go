// Package eval runs postfix token queues on a value stack.
package eval

import (
	"fmt"

	"rpncalc/internal/diag"
	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil
}

type operand struct {
	val  Value
	span source.Span
}

type machine struct {
	stack []operand
	opts  Options
	last  source.Span
}

// Evaluate drains q front to back and returns the single value left on the
// stack. The queue is consumed even when evaluation fails.
func Evaluate(q *rpn.Queue, opts Options) (Value, error) {
	m := &machine{
		stack: make([]operand, 0, q.Len()/2+1),
		opts:  opts,
	}
	for {
		tok, ok := q.Pop()
		if !ok {
			break
		}
		m.last = tok.Span
		if err := m.step(tok); err != nil {
			return Value{}, err
		}
	}
	if len(m.stack) != 1 {
		return Value{}, m.fail(m.last, fmt.Sprintf("malformed postfix sequence: %d values left on the stack", len(m.stack)))
	}
	return m.stack[0].val, nil
}

func (m *machine) step(tok token.Token) error {
	switch {
	case tok.Kind == token.Number:
		v, ok := ParseInt(tok.Text)
		if !ok {
			return m.fail(tok.Span, fmt.Sprintf("malformed number %q", tok.Text))
		}
		m.stack = append(m.stack, operand{val: v, span: tok.Span})
		return nil
	case tok.IsOperator():
		return m.apply(tok)
	default:
		return m.fail(tok.Span, "unexpected "+tok.Kind.String()+" token in postfix sequence")
	}
}

// apply pops the right operand, then the left one, and pushes the result.
func (m *machine) apply(op token.Token) error {
	right, ok := m.pop()
	if !ok {
		return m.fail(op.Span, "operator "+op.Text+" is missing its operands")
	}
	left, ok := m.pop()
	if !ok {
		return m.fail(op.Span, "operator "+op.Text+" is missing its left operand")
	}

	var res Value
	switch op.Kind {
	case token.Plus:
		res = add(left.val, right.val)
	case token.Minus:
		res = sub(left.val, right.val)
	case token.Star:
		res = mul(left.val, right.val)
	case token.Slash:
		if right.val.IsZero() {
			b := diag.ReportError(m.opts.Reporter, diag.EvalDivisionByZero, op.Span, "division by zero").
				WithNote(right.span, "divisor evaluates to 0")
			b.Emit()
			return b.Err()
		}
		res = quo(left.val, right.val)
	}
	m.stack = append(m.stack, operand{val: res, span: left.span.Cover(op.Span).Cover(right.span)})
	return nil
}

func (m *machine) pop() (operand, bool) {
	n := len(m.stack)
	if n == 0 {
		return operand{}, false
	}
	top := m.stack[n-1]
	m.stack = m.stack[:n-1]
	return top, true
}

func (m *machine) fail(sp source.Span, msg string) error {
	b := diag.ReportError(m.opts.Reporter, diag.EvalInternal, sp, msg)
	b.Emit()
	return b.Err()
}
