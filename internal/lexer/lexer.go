package lexer

import (
	"rpncalc/internal/diag"
	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

// Lexer turns an expression into tokens one at a time by running the
// automaton from state.go. Whitespace tokens are emitted; dropping them is the
// caller's job.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	start  Mark
	state  LexState // состояние после последнего шага
	err    *diag.Error
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewRange creates a lexer over the bytes of file covered by rng. The end of
// rng acts as the end-of-input sentinel; spans stay file-relative.
func NewRange(file *source.File, rng source.Span, opts Options) *Lexer {
	lx := New(file, opts)
	lx.cursor.Limit = min(rng.End, lx.cursor.Limit)
	lx.cursor.Off = min(rng.Start, lx.cursor.Limit)
	lx.start = lx.cursor.Mark()
	return lx
}

// Reset rewinds the lexer to the beginning of its expression.
func (lx *Lexer) Reset() {
	lx.cursor.Reset(lx.start)
	lx.state = StateStart
	lx.err = nil
}

// State returns the state the automaton stopped in on the last call to Next.
func (lx *Lexer) State() LexState {
	return lx.state
}

// Next возвращает следующий токен. После конца выражения всегда возвращает EOF.
// An unrecognized character aborts lexing: the error is returned from this and
// every later call.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.err != nil {
		return token.Token{Kind: token.Invalid, Span: lx.err.Primary}, lx.err
	}

	start := lx.cursor.Mark()
	state := StateStart
	for state.Scanning() {
		state = nextState(state, lx.category())
		if state.PushesBack() || state == StateEnd || state == StateReject {
			break
		}
		lx.cursor.Bump()
	}
	lx.state = state

	switch {
	case state == StateEnd:
		return token.New(token.EOF, lx.cursor.SpanFrom(start), ""), nil
	case state == StateReject:
		return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}, lx.reject()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.New(state.Kind(), sp, lx.file.Slice(sp)), nil
}

func (lx *Lexer) category() category {
	if lx.cursor.EOF() {
		return catEnd
	}
	return categorize(lx.cursor.Peek())
}

// reject reports the character under the cursor and latches the error.
func (lx *Lexer) reject() *diag.Error {
	r, size := lx.cursor.PeekRune()
	sp := source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off + size}
	b := diag.ReportError(lx.opts.Reporter, diag.LexUnknownChar, sp, "unrecognized character "+quoteRune(r))
	b.Emit()
	lx.err = b.Err()
	return lx.err
}

// Tokenize lexes the whole file and returns the significant tokens, without
// whitespace and without the trailing EOF.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	return collect(New(file, opts))
}

// TokenizeRange is Tokenize restricted to the bytes covered by rng.
func TokenizeRange(file *source.File, rng source.Span, opts Options) ([]token.Token, error) {
	return collect(NewRange(file, rng, opts))
}

func collect(lx *Lexer) ([]token.Token, error) {
	tokens := make([]token.Token, 0, (lx.cursor.Limit-lx.cursor.Off)/2+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return tokens, nil
		}
		if tok.IsTrivia() {
			continue
		}
		tokens = append(tokens, tok)
	}
}

// All lexes the whole file and returns every token including whitespace and
// the trailing EOF.
func All(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	var tokens []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}
