package rpn

import (
	"strings"

	"rpncalc/internal/token"
)

// Queue is the postfix accumulator: append at the tail, remove at the head.
type Queue struct {
	items []token.Token
	head  int
}

// NewQueue returns a queue holding tokens in order.
func NewQueue(tokens ...token.Token) *Queue {
	return &Queue{items: append([]token.Token(nil), tokens...)}
}

// Push appends tok at the tail.
func (q *Queue) Push(tok token.Token) {
	q.items = append(q.items, tok)
}

// Pop removes and returns the head token.
func (q *Queue) Pop() (token.Token, bool) {
	if q.Len() == 0 {
		return token.Token{}, false
	}
	tok := q.items[q.head]
	q.head++
	return tok, true
}

func (q *Queue) Len() int {
	return len(q.items) - q.head
}

// Tokens returns the pending tokens, head first. The slice is shared.
func (q *Queue) Tokens() []token.Token {
	return q.items[q.head:]
}

// String renders the pending tokens space separated, e.g. "2 3 +".
func (q *Queue) String() string {
	var sb strings.Builder
	for i, tok := range q.Tokens() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// Stack holds operators and open parentheses during conversion.
type Stack struct {
	items []token.Token
}

func (s *Stack) Push(tok token.Token) {
	s.items = append(s.items, tok)
}

func (s *Stack) Pop() (token.Token, bool) {
	n := len(s.items)
	if n == 0 {
		return token.Token{}, false
	}
	tok := s.items[n-1]
	s.items = s.items[:n-1]
	return tok, true
}

func (s *Stack) Peek() (token.Token, bool) {
	if len(s.items) == 0 {
		return token.Token{}, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Stack) Len() int {
	return len(s.items)
}
