package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rpncalc/internal/diag"
	"rpncalc/internal/diagfmt"
	"rpncalc/internal/lexer"
	"rpncalc/internal/source"
	"rpncalc/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] expression",
	Short: "Print the tokens of an expression",
	Long:  `Tokenize breaks an infix expression down into numbers, operators and parentheses`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("all", false, "include whitespace runs and the EOF token")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	all, err := cmd.Flags().GetBool("all")
	if err != nil {
		return fmt.Errorf("failed to get all flag: %w", err)
	}

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<expr>", []byte(strings.Join(args, " "))))
	bag := diag.NewBag(maxDiagnostics(cmd))
	opts := lexer.Options{Reporter: diag.BagReporter{Bag: bag}}

	var tokens []token.Token
	if all {
		tokens, err = lexer.All(file, opts)
	} else {
		tokens, err = lexer.Tokenize(file, opts)
	}

	if err != nil {
		return reportDiagnostics(cmd, bag, fs, err)
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens, fs)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
