package diagfmt

import (
	"encoding/json"
	"io"

	"rpncalc/internal/diag"
	"rpncalc/internal/source"
)

// LocationJSON представляет местоположение в выражении для JSON
type LocationJSON struct {
	File      string `json:"file" msgpack:"file"`
	StartByte uint32 `json:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" msgpack:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" msgpack:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" msgpack:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" msgpack:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" msgpack:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity" msgpack:"severity"`
	Code     string       `json:"code" msgpack:"code"`
	Message  string       `json:"message" msgpack:"message"`
	Location LocationJSON `json:"location" msgpack:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// DiagnosticsOutput is the root object of JSON diagnostics output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		StartByte: span.Start,
		EndByte:   span.End,
	}
	f := fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f, opts.PathMode, opts.BaseDir)
	if opts.IncludePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// MakeDiagnostic converts one diagnostic to its JSON form.
func MakeDiagnostic(d diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: makeLocation(d.Primary, fs, opts),
	}
	if opts.IncludeNotes {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{
				Message:  n.Msg,
				Location: makeLocation(n.Span, fs, opts),
			})
		}
	}
	return out
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, n)}
	for _, d := range items[:n] {
		out.Diagnostics = append(out.Diagnostics, MakeDiagnostic(d, fs, opts))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics of bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
