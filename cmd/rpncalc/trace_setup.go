package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rpncalc/internal/trace"
)

// setupTracing inspects trace-related flags and rpncalc.toml and attaches a
// tracer to the command context. It returns a cleanup function.
func setupTracing(cmd *cobra.Command) (func(), error) {
	levelStr, err := stringSetting(cmd, "trace-level", activeConfig.Trace.Level)
	if err != nil {
		return nil, err
	}
	modeStr, err := stringSetting(cmd, "trace-mode", activeConfig.Trace.Mode)
	if err != nil {
		return nil, err
	}
	traceOutput, err := stringSetting(cmd, "trace", activeConfig.Trace.Output)
	if err != nil {
		return nil, err
	}
	ringSize, err := cmd.Flags().GetInt("trace-ring-size")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace without a level means phase tracing
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
		RingSize:   ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	cleanup := func() {
		// ring mode keeps events in memory; print them on exit
		if ring, ok := tracer.(*trace.RingTracer); ok {
			if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
				fmt.Fprintf(os.Stderr, "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
