// Package calc evaluates arithmetic expressions by running the lexer, the
// postfix converter and the evaluator in sequence.
package calc

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"rpncalc/internal/eval"
	"rpncalc/internal/lexer"
	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
	"rpncalc/internal/token"
	"rpncalc/internal/trace"
)

// Result is one successful evaluation.
type Result struct {
	Expr    string
	Value   eval.Value
	Tokens  []token.Token // infix, without whitespace
	Postfix []token.Token
}

// PostfixString renders the postfix form, e.g. "2 3 +".
func (r Result) PostfixString() string {
	parts := make([]string, len(r.Postfix))
	for i, tok := range r.Postfix {
		parts[i] = tok.Text
	}
	return strings.Join(parts, " ")
}

// Calculator remembers the last expression it was given and reuses it when
// Calc is called with an empty one. It is not safe for concurrent use; use
// one Calculator per goroutine or the stateless Eval.
type Calculator struct {
	expr string
	cfg  config
}

// New creates a Calculator with expr as its default expression.
func New(expr string, opts ...Option) *Calculator {
	return &Calculator{expr: expr, cfg: newConfig(opts)}
}

// Expr returns the stored default expression.
func (c *Calculator) Expr() string {
	return c.expr
}

// Calc evaluates expr, which also becomes the new default. An empty expr
// re-evaluates the stored default.
func (c *Calculator) Calc(ctx context.Context, expr string) (Result, error) {
	if expr != "" {
		c.expr = expr
	}
	return evalString(ctx, c.expr, c.cfg)
}

// Eval evaluates expr without any stored state.
func Eval(ctx context.Context, expr string, opts ...Option) (Result, error) {
	return evalString(ctx, expr, newConfig(opts))
}

// EvalSpan evaluates the part of file covered by rng. Spans in errors and
// results stay relative to file.
func EvalSpan(ctx context.Context, file *source.File, rng source.Span, opts ...Option) (Result, error) {
	return run(ctx, file, rng, newConfig(opts))
}

func evalString(ctx context.Context, expr string, cfg config) (Result, error) {
	files := cfg.files
	if files == nil {
		files = source.NewFileSet()
	}
	file := files.Get(files.AddVirtual(cfg.name, []byte(expr)))
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return Result{}, fmt.Errorf("expression too long: %w", err)
	}
	return run(ctx, file, source.Span{File: file.ID, Start: 0, End: end}, cfg)
}

// run is the whole pipeline: tokenize → convert → evaluate. Nothing is
// shared between calls.
func run(ctx context.Context, file *source.File, rng source.Span, cfg config) (Result, error) {
	tr := trace.FromContext(ctx)
	root := trace.Begin(tr, trace.ScopeDriver, "calc", trace.CurrentSpan(ctx))
	res := Result{Expr: file.Slice(rng)}

	pass := trace.Begin(tr, trace.ScopePass, "tokenize", root.ID())
	idx := cfg.timer.Begin("tokenize")
	tokens, err := lexer.TokenizeRange(file, rng, lexer.Options{Reporter: cfg.reporter})
	cfg.timer.End(idx, "")
	pass.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")
	if err != nil {
		return fail(tr, root, "tokenize", err)
	}
	res.Tokens = tokens

	pass = trace.Begin(tr, trace.ScopePass, "convert", root.ID())
	idx = cfg.timer.Begin("convert")
	queue, err := rpn.ToPostfix(tokens, rpn.Options{Reporter: cfg.reporter})
	cfg.timer.End(idx, "")
	if err != nil {
		pass.End("")
		return fail(tr, root, "convert", err)
	}
	res.Postfix = slices.Clone(queue.Tokens())
	pass.WithExtra("postfix", res.PostfixString()).End("")

	pass = trace.Begin(tr, trace.ScopePass, "evaluate", root.ID())
	idx = cfg.timer.Begin("evaluate")
	val, err := eval.Evaluate(queue, eval.Options{Reporter: cfg.reporter})
	cfg.timer.End(idx, "")
	pass.End("")
	if err != nil {
		return fail(tr, root, "evaluate", err)
	}
	res.Value = val

	root.WithExtra("result", val.String()).End("ok")
	return res, nil
}

func fail(tr trace.Tracer, root *trace.Span, phase string, err error) (Result, error) {
	trace.Error(tr, trace.ScopePass, phase, err, root.ID())
	root.End("error")
	return Result{}, err
}
