package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rpncalc/internal/config"
)

// activeConfig is the rpncalc.toml in effect for this invocation.
var activeConfig = config.Default()

func loadConfig(cmd *cobra.Command) error {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}
	activeConfig = cfg
	return nil
}

// stringSetting returns the flag value when it was set explicitly and
// fallback (usually from rpncalc.toml) otherwise.
func stringSetting(cmd *cobra.Command, name, fallback string) (string, error) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return "", fmt.Errorf("unknown flag %q", name)
	}
	if flag.Changed || fallback == "" {
		return flag.Value.String(), nil
	}
	return fallback, nil
}

func intSetting(cmd *cobra.Command, name string, fallback int) (int, error) {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if cmd.Flags().Changed(name) || fallback == 0 {
		return v, nil
	}
	return fallback, nil
}

// colorMode is auto|on|off after flags and config are merged.
var colorMode = "auto"

func applyColor(cmd *cobra.Command) {
	mode, err := stringSetting(cmd, "color", activeConfig.Output.Color)
	if err != nil {
		mode = "auto"
	}
	colorMode = mode
	color.NoColor = !useColor(os.Stdout)
}

func useColor(f *os.File) bool {
	switch colorMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil || n <= 0 {
		return 100
	}
	return n
}

func showTimings(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("timings")
	return err == nil && v
}
