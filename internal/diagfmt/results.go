package diagfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"rpncalc/internal/calc"
	"rpncalc/internal/diag"
	"rpncalc/internal/observ"
	"rpncalc/internal/source"
)

// Format selects how evaluation results are written.
type Format uint8

const (
	FormatPretty Format = iota
	FormatJSON
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "pretty"
	}
}

// ParseFormat parses pretty|json|msgpack.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	}
	return FormatPretty, fmt.Errorf("unknown format %q (want pretty, json or msgpack)", s)
}

// ResultOutput is one evaluated expression. Exactly one of Value and Error is set.
type ResultOutput struct {
	Line    uint32          `json:"line,omitempty" msgpack:"line,omitempty"`
	Expr    string          `json:"expr" msgpack:"expr"`
	Value   string          `json:"value,omitempty" msgpack:"value,omitempty"`
	Postfix string          `json:"postfix,omitempty" msgpack:"postfix,omitempty"`
	Error   *DiagnosticJSON `json:"error,omitempty" msgpack:"error,omitempty"`
}

// ResultsOutput is the document written by WriteResults.
type ResultsOutput struct {
	Results []ResultOutput `json:"results" msgpack:"results"`
	Count   int            `json:"count" msgpack:"count"`
	Failed  int            `json:"failed" msgpack:"failed"`
	Timings *observ.Report `json:"timings,omitempty" msgpack:"timings,omitempty"`
}

// MakeResult converts the outcome of one evaluation. line is 0 for
// expressions that did not come from a file.
func MakeResult(line uint32, expr string, res calc.Result, err error, fs *source.FileSet, opts JSONOpts) ResultOutput {
	out := ResultOutput{Line: line, Expr: expr}
	if err == nil {
		out.Value = res.Value.String()
		out.Postfix = res.PostfixString()
		return out
	}
	var de *diag.Error
	if errors.As(err, &de) {
		d := MakeDiagnostic(de.Diagnostic, fs, opts)
		out.Error = &d
		return out
	}
	out.Error = &DiagnosticJSON{
		Severity: diag.SevError.String(),
		Code:     diag.UnknownCode.ID(),
		Message:  err.Error(),
	}
	return out
}

// Add appends r and keeps the counters in sync.
func (o *ResultsOutput) Add(r ResultOutput) {
	o.Results = append(o.Results, r)
	o.Count++
	if r.Error != nil {
		o.Failed++
	}
}

// WriteResults encodes out in the given format.
func WriteResults(w io.Writer, out ResultsOutput, format Format, showPostfix bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(out)
	default:
		return writeResultsPretty(w, out, showPostfix)
	}
}

func writeResultsPretty(w io.Writer, out ResultsOutput, showPostfix bool) error {
	for _, r := range out.Results {
		var sb strings.Builder
		if r.Line != 0 {
			fmt.Fprintf(&sb, "%d: ", r.Line)
		}
		switch {
		case r.Error != nil:
			fmt.Fprintf(&sb, "%s: %s %s: %s", r.Expr, r.Error.Severity, r.Error.Code, r.Error.Message)
		case showPostfix:
			fmt.Fprintf(&sb, "%s => %s = %s", r.Expr, r.Postfix, r.Value)
		default:
			fmt.Fprintf(&sb, "%s = %s", r.Expr, r.Value)
		}
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	if out.Timings != nil {
		for _, p := range out.Timings.Phases {
			if _, err := fmt.Fprintf(w, "  %-12s %5dx %9.3f ms\n", p.Name, p.Count, p.DurationMS); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "  %-12s %6s %9.3f ms\n", "total", "", out.Timings.TotalMS); err != nil {
			return err
		}
	}
	return nil
}
