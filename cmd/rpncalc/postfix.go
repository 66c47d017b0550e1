package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rpncalc/internal/diag"
	"rpncalc/internal/lexer"
	"rpncalc/internal/rpn"
	"rpncalc/internal/source"
)

var postfixCmd = &cobra.Command{
	Use:   "postfix expression",
	Short: "Convert an infix expression to postfix notation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPostfix,
}

func runPostfix(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<expr>", []byte(strings.Join(args, " "))))
	bag := diag.NewBag(maxDiagnostics(cmd))
	reporter := diag.BagReporter{Bag: bag}

	tokens, err := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	if err != nil {
		return reportDiagnostics(cmd, bag, fs, err)
	}
	queue, err := rpn.ToPostfix(tokens, rpn.Options{Reporter: reporter})
	if err != nil {
		return reportDiagnostics(cmd, bag, fs, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), queue.String())
	return nil
}
