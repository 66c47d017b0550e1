// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

// CheckTokenSpans runs the span invariants on a token stream lexed from sf:
// 1) every span points at sf and lies within its content
// 2) every non-EOF span is non-empty and its text is the covered bytes
// 3) spans are ordered and do not overlap
func CheckTokenSpans(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d (%s) points to file %d, want %d", i, tok.Kind, sp.File, sf.ID)
		}
		if sp.End > lenContent || sp.Start > sp.End {
			return fmt.Errorf("token %d (%s) span %v outside content of %d bytes", i, tok.Kind, sp, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d (%s) span %v overlaps previous end %d", i, tok.Kind, sp, prevEnd)
		}
		prevEnd = sp.End
		if tok.Kind == token.EOF {
			continue
		}
		if sp.Empty() {
			return fmt.Errorf("token %d (%s) has empty span", i, tok.Kind)
		}
		if got := sf.Slice(sp); got != tok.Text {
			return fmt.Errorf("token %d (%s) text %q, source has %q", i, tok.Kind, tok.Text, got)
		}
	}
	return nil
}

// CheckPostfix verifies a postfix token sequence: it contains no
// parentheses and every operator finds two operands, leaving exactly one value.
func CheckPostfix(tokens []token.Token) error {
	depth := 0
	for i, tok := range tokens {
		switch {
		case tok.IsParen():
			return fmt.Errorf("postfix token %d is a parenthesis", i)
		case tok.Kind == token.Number:
			depth++
		case tok.IsOperator():
			if depth < 2 {
				return fmt.Errorf("operator %d (%s) has %d operands", i, tok.Text, depth)
			}
			depth--
		default:
			return fmt.Errorf("unexpected postfix token %d (%s)", i, tok.Kind)
		}
	}
	if depth != 1 {
		return fmt.Errorf("postfix leaves %d values", depth)
	}
	return nil
}
