package driver

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"rpncalc/internal/calc"
	"rpncalc/internal/diag"
	"rpncalc/internal/observ"
	"rpncalc/internal/source"
	"rpncalc/internal/trace"
)

// LineResult is the outcome of one expression line of a batch file.
type LineResult struct {
	Line   uint32      // 1-based line number in the file
	Span   source.Span // the line without its newline
	Expr   string      // trimmed line text
	Result calc.Result
	Err    error
	Bag    *diag.Bag
}

// BatchResult holds the per-line results of a batch file in input order.
type BatchResult struct {
	FileSet *source.FileSet
	File    *source.File
	Lines   []LineResult
}

// Failed returns the number of lines that did not evaluate.
func (r *BatchResult) Failed() int {
	n := 0
	for i := range r.Lines {
		if r.Lines[i].Err != nil {
			n++
		}
	}
	return n
}

// Diagnostics merges the per-line bags in line order.
func (r *BatchResult) Diagnostics(maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for i := range r.Lines {
		bag.Merge(r.Lines[i].Bag)
	}
	return bag
}

// BatchOptions tunes EvalFile.
type BatchOptions struct {
	Jobs           int // 0 = GOMAXPROCS
	MaxDiagnostics int
	Timer          *observ.Timer
	Progress       ProgressSink
}

// EvalFile loads path and evaluates every non-blank line that does not start
// with '#'. Evaluation errors stay in the corresponding LineResult; the
// returned error is only set for I/O failures (diag.ErrLoadFile) and
// cancellation.
func EvalFile(ctx context.Context, path string, opts BatchOptions) (*BatchResult, error) {
	fs := source.NewFileSet()
	idx := opts.Timer.Begin("load")
	id, err := fs.Load(path)
	opts.Timer.End(idx, "")
	if err != nil {
		return nil, diag.Wrap(diag.IOLoadFileError, err, "cannot load batch file")
	}
	return EvalSource(ctx, fs, fs.Get(id), opts)
}

// EvalSource is EvalFile for a file already registered in fs.
func EvalSource(ctx context.Context, fs *source.FileSet, file *source.File, opts BatchOptions) (*BatchResult, error) {
	lines, err := exprLines(file)
	if err != nil {
		return nil, err
	}
	result := &BatchResult{FileSet: fs, File: file, Lines: make([]LineResult, len(lines))}
	if len(lines) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tr := trace.FromContext(ctx)
	root := trace.Begin(tr, trace.ScopeDriver, "batch", trace.CurrentSpan(ctx)).
		WithExtra("file", file.Path).
		WithExtra("lines", strconv.Itoa(len(lines)))
	defer root.End("")

	for _, ln := range lines {
		emit(opts.Progress, Event{Line: ln.line, Expr: ln.expr, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(lines)))

	for i, ln := range lines {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(opts.Progress, Event{Line: ln.line, Expr: ln.expr, Status: StatusWorking})
			started := time.Now()
			item := trace.Begin(tr, trace.ScopeItem, "line", root.ID()).
				WithExtra("line", strconv.FormatUint(uint64(ln.line), 10))
			lctx := trace.WithSpan(gctx, item)

			bag := diag.NewBag(opts.MaxDiagnostics)
			res, evalErr := calc.EvalSpan(lctx, file, ln.span,
				calc.WithReporter(diag.BagReporter{Bag: bag}),
				calc.WithTimer(opts.Timer),
			)
			done := Event{Line: ln.line, Expr: ln.expr, Status: StatusDone, Elapsed: time.Since(started)}
			if evalErr != nil {
				item.End("error")
				done.Status, done.Err = StatusError, evalErr
			} else {
				item.End(res.Value.String())
			}
			emit(opts.Progress, done)

			// индекс i уникален для каждой горутины
			result.Lines[i] = LineResult{
				Line:   ln.line,
				Span:   ln.span,
				Expr:   ln.expr,
				Result: res,
				Err:    evalErr,
				Bag:    bag,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

// EvalLine evaluates a single expression registered in fs under name.
func EvalLine(ctx context.Context, fs *source.FileSet, name, expr string, maxDiagnostics int, timer *observ.Timer) LineResult {
	bag := diag.NewBag(maxDiagnostics)
	res, err := calc.Eval(ctx, expr,
		calc.WithFileSet(fs),
		calc.WithSourceName(name),
		calc.WithReporter(diag.BagReporter{Bag: bag}),
		calc.WithTimer(timer),
	)
	return LineResult{Line: 1, Expr: expr, Result: res, Err: err, Bag: bag}
}

type exprLine struct {
	line uint32
	span source.Span
	expr string
}

// exprLines splits file into evaluable lines, skipping blanks and '#' comments.
func exprLines(file *source.File) ([]exprLine, error) {
	var lines []exprLine
	content := file.Content
	var lineNo uint32
	for start := 0; start <= len(content); {
		lineNo++
		end := bytes.IndexByte(content[start:], '\n')
		if end < 0 {
			end = len(content)
		} else {
			end += start
		}
		text := bytes.TrimSpace(content[start:end])
		if len(text) > 0 && text[0] != '#' {
			s, err := safecast.Conv[uint32](start)
			if err != nil {
				return nil, err
			}
			e, err := safecast.Conv[uint32](end)
			if err != nil {
				return nil, err
			}
			lines = append(lines, exprLine{
				line: lineNo,
				span: source.Span{File: file.ID, Start: s, End: e},
				expr: strings.TrimSpace(string(text)),
			})
		}
		start = end + 1
	}
	return lines, nil
}
