// Package rpn converts infix token sequences to postfix order with the
// shunting-yard algorithm.
package rpn

import (
	"rpncalc/internal/diag"
	"rpncalc/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil
}

type converter struct {
	out  *Queue
	ops  Stack
	opts Options
}

// ToPostfix converts significant infix tokens into a postfix queue. A token of
// kind EOF ends the input early. On error no queue is returned.
func ToPostfix(tokens []token.Token, opts Options) (*Queue, error) {
	c := &converter{
		out:  &Queue{items: make([]token.Token, 0, len(tokens))},
		opts: opts,
	}
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}
		if err := c.feed(tok); err != nil {
			return nil, err
		}
	}
	if err := c.unload(); err != nil {
		return nil, err
	}
	return c.out, nil
}

func (c *converter) feed(tok token.Token) error {
	switch {
	case tok.Kind == token.Number:
		c.out.Push(tok)
	case tok.IsOperator():
		c.pushOperator(tok)
	case tok.Kind == token.LParen:
		c.ops.Push(tok)
	case tok.Kind == token.RParen:
		return c.closeGroup(tok)
	default:
		b := diag.ReportError(c.opts.Reporter, diag.SynUnexpectedToken, tok.Span, "unexpected "+tok.Kind.String()+" token")
		b.Emit()
		return b.Err()
	}
	return nil
}

// pushOperator moves every stacked operator that binds at least as tightly as
// op to the output, stopping at an open parenthesis, then stacks op.
// Equal precedence pops, which makes all four operators left-associative.
func (c *converter) pushOperator(op token.Token) {
	top, ok := c.ops.Peek()
	if !ok || top.Kind == token.LParen || op.Prec > top.Prec {
		c.ops.Push(op)
		return
	}
	for {
		top, ok = c.ops.Peek()
		if !ok || top.Kind == token.LParen || top.Prec < op.Prec {
			break
		}
		c.ops.Pop()
		c.out.Push(top)
	}
	c.ops.Push(op)
}

// closeGroup unloads operators up to the matching '(' and discards it.
func (c *converter) closeGroup(rparen token.Token) error {
	for {
		top, ok := c.ops.Pop()
		if !ok {
			b := diag.ReportError(c.opts.Reporter, diag.SynUnbalancedParen, rparen.Span, "unbalanced parentheses: no matching '(' for ')'")
			b.Emit()
			return b.Err()
		}
		if top.Kind == token.LParen {
			return nil
		}
		c.out.Push(top)
	}
}

// unload moves the remaining operators to the output in pop order.
func (c *converter) unload() error {
	for {
		top, ok := c.ops.Pop()
		if !ok {
			return nil
		}
		if top.Kind == token.LParen {
			b := diag.ReportError(c.opts.Reporter, diag.SynUnbalancedParen, top.Span, "unbalanced parentheses: '(' is never closed")
			b.Emit()
			return b.Err()
		}
		c.out.Push(top)
	}
}
