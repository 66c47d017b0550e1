package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rpncalc/internal/diag"
	"rpncalc/internal/diagfmt"
	"rpncalc/internal/driver"
	"rpncalc/internal/observ"
	"rpncalc/internal/source"
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate an infix expression",
	Long: `Eval tokenizes, converts and evaluates an infix expression.
Without arguments the [calc].default expression of rpncalc.toml is used.`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	evalCmd.Flags().Bool("postfix", false, "also print the postfix form")
}

func runEval(cmd *cobra.Command, args []string) error {
	expr := strings.Join(args, " ")
	if expr == "" {
		expr = activeConfig.Calc.Default
	}
	if expr == "" {
		return errors.New("no expression given and no [calc].default configured")
	}

	formatStr, err := stringSetting(cmd, "format", activeConfig.Output.Format)
	if err != nil {
		return err
	}
	format, err := diagfmt.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	withPostfix, err := cmd.Flags().GetBool("postfix")
	if err != nil {
		return fmt.Errorf("failed to get postfix flag: %w", err)
	}

	var timer *observ.Timer
	if showTimings(cmd) {
		timer = observ.NewTimer()
	}
	fs := source.NewFileSet()
	lr := driver.EvalLine(cmd.Context(), fs, "<expr>", expr, maxDiagnostics(cmd), timer)

	if format != diagfmt.FormatPretty {
		var out diagfmt.ResultsOutput
		out.Add(diagfmt.MakeResult(0, expr, lr.Result, lr.Err, fs, jsonOpts()))
		if timer != nil {
			report := timer.Report()
			out.Timings = &report
		}
		if err := diagfmt.WriteResults(cmd.OutOrStdout(), out, format, withPostfix); err != nil {
			return err
		}
		if lr.Err != nil {
			return errReported
		}
		return nil
	}

	if lr.Err != nil {
		return reportDiagnostics(cmd, lr.Bag, fs, lr.Err)
	}
	if withPostfix {
		fmt.Fprintln(cmd.OutOrStdout(), lr.Result.PostfixString())
	}
	fmt.Fprintln(cmd.OutOrStdout(), lr.Result.Value.String())
	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	return nil
}

// reportDiagnostics prints bag to stderr. err is returned as is when it
// carries no diagnostic.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, err error) error {
	if bag.Len() == 0 {
		return err
	}
	bag.Sort()
	opts := diagfmt.PrettyOpts{
		Color:     useColor(os.Stderr),
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	}
	if perr := diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, opts); perr != nil {
		return perr
	}
	return errReported
}

func jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		PathMode:         diagfmt.PathModeRelative,
	}
}
