package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"rpncalc/internal/calc"
	"rpncalc/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive calculator session",
	Long: `Repl evaluates each line you enter. An empty line evaluates the
previous expression again; the session starts with [calc].default.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := calc.New(activeConfig.Calc.Default)
		model := ui.NewReplModel(cmd.Context(), c)
		program := tea.NewProgram(model,
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()),
		)
		_, err := program.Run()
		return err
	},
}
