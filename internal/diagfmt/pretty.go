package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rpncalc/internal/diag"
	"rpncalc/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty prints every diagnostic of bag in order:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	  1 | 1 + (2
//	    |     ^
//	  note: <path>:<line>:<col>: <Msg>
//
// Call bag.Sort() first for position order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	file := fs.Get(d.Primary.File)
	if file == nil {
		_, err := fmt.Fprintf(w, "%s %s: %s\n",
			p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
		return err
	}
	start, _ := fs.Resolve(d.Primary)
	path := formatPath(file, opts.PathMode, opts.BaseDir)
	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col,
		p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message); err != nil {
		return err
	}
	if err := snippet(w, file, fs, d.Primary, p); err != nil {
		return err
	}
	if !opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		if nf == nil {
			if _, err := fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg); err != nil {
				return err
			}
			continue
		}
		pos, _ := fs.Resolve(n.Span)
		if _, err := fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
			formatPath(nf, opts.PathMode, opts.BaseDir), pos.Line, pos.Col, n.Msg); err != nil {
			return err
		}
	}
	return nil
}

// snippet prints the primary line and underlines the span with ^~~~.
// Display width is measured in terminal cells so that wide runes line up.
func snippet(w io.Writer, file *source.File, fs *source.FileSet, sp source.Span, p palette) error {
	start, end := fs.Resolve(sp)
	line := strings.ReplaceAll(file.GetLine(start.Line), "\t", " ")
	gutter := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(gutter))

	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(line))
	}
	lead := runewidth.StringWidth(line[:col])
	width := max(runewidth.StringWidth(line[col:stop]), 1)

	mark := "^" + strings.Repeat("~", width-1)
	if _, err := fmt.Fprintf(w, "  %s %s %s\n", p.gutter.Sprint(gutter), p.gutter.Sprint("|"), line); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  %s %s %s%s\n", pad, p.gutter.Sprint("|"), strings.Repeat(" ", lead), p.caret.Sprint(mark))
	return err
}
