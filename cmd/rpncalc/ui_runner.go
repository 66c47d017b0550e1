package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"rpncalc/internal/driver"
	"rpncalc/internal/ui"
)

type batchOutcome struct {
	result *driver.BatchResult
	err    error
}

func runBatchWithUI(ctx context.Context, out io.Writer, title, path string, opts driver.BatchOptions) (*driver.BatchResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.EvalFile(ctx, path, optsCopy)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// the model stops reading on failure; keep the workers unblocked
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
