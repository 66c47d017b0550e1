package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rpncalc/internal/diagfmt"
	"rpncalc/internal/driver"
	"rpncalc/internal/observ"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] file",
	Short: "Evaluate every expression line of a file",
	Long: `Batch evaluates each non-blank line of a file that does not start with '#'.
Lines are evaluated concurrently; results are printed in file order.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	batchCmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	batchCmd.Flags().Bool("postfix", false, "also print the postfix form")
	batchCmd.Flags().String("ui", "off", "show progress view (auto|on|off)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	jobs, err := intSetting(cmd, "jobs", activeConfig.Batch.Jobs)
	if err != nil {
		return err
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
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	var timer *observ.Timer
	if showTimings(cmd) {
		timer = observ.NewTimer()
	}
	opts := driver.BatchOptions{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics(cmd),
		Timer:          timer,
	}

	var res *driver.BatchResult
	if shouldUseTUI(mode, format != diagfmt.FormatPretty) {
		res, err = runBatchWithUI(cmd.Context(), cmd.ErrOrStderr(), path, path, opts)
	} else {
		res, err = driver.EvalFile(cmd.Context(), path, opts)
	}
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	var out diagfmt.ResultsOutput
	for _, lr := range res.Lines {
		out.Add(diagfmt.MakeResult(lr.Line, lr.Expr, lr.Result, lr.Err, res.FileSet, jsonOpts()))
	}
	if timer != nil {
		report := timer.Report()
		out.Timings = &report
	}
	if err := diagfmt.WriteResults(cmd.OutOrStdout(), out, format, withPostfix); err != nil {
		return err
	}

	if out.Failed == 0 {
		return nil
	}
	if format == diagfmt.FormatPretty {
		bag := res.Diagnostics(maxDiagnostics(cmd))
		bag.Sort()
		opts := diagfmt.PrettyOpts{Color: useColor(os.Stderr), PathMode: diagfmt.PathModeRelative, ShowNotes: true}
		if err := diagfmt.Pretty(cmd.ErrOrStderr(), bag, res.FileSet, opts); err != nil {
			return err
		}
	}
	return errReported
}
