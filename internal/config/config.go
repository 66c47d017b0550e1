// Package config loads rpncalc.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"rpncalc/internal/diag"
)

// FileName is the config file looked up from the working directory upwards.
const FileName = "rpncalc.toml"

type Config struct {
	Calc   CalcConfig   `toml:"calc"`
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`
	Batch  BatchConfig  `toml:"batch"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
}

type CalcConfig struct {
	// Default is evaluated by `eval` and the repl when no expression is given.
	Default string `toml:"default"`
}

type OutputConfig struct {
	Format string `toml:"format"` // pretty|json|msgpack
	Color  string `toml:"color"`  // auto|on|off
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Mode   string `toml:"mode"`
	Output string `toml:"output"`
}

type BatchConfig struct {
	Jobs int `toml:"jobs"` // 0 = GOMAXPROCS
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Output: OutputConfig{Format: "pretty", Color: "auto"},
		Trace:  TraceConfig{Level: "off", Mode: "stream"},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover returns the config found from startDir, or Default when there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads path on top of Default. Unknown keys and invalid values are
// reported as diag.ErrConfig.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, diag.Wrap(diag.IOConfigError, err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, diag.Wrap(diag.IOConfigError, nil, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, diag.Wrap(diag.IOConfigError, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if !oneOf(c.Output.Format, "pretty", "json", "msgpack") {
		return fmt.Errorf("[output].format must be pretty, json or msgpack, got %q", c.Output.Format)
	}
	if !oneOf(c.Output.Color, "auto", "on", "off") {
		return fmt.Errorf("[output].color must be auto, on or off, got %q", c.Output.Color)
	}
	if !oneOf(strings.ToLower(c.Trace.Level), "off", "error", "phase", "detail", "debug") {
		return fmt.Errorf("[trace].level must be off, error, phase, detail or debug, got %q", c.Trace.Level)
	}
	if !oneOf(strings.ToLower(c.Trace.Mode), "stream", "ring", "both") {
		return fmt.Errorf("[trace].mode must be stream, ring or both, got %q", c.Trace.Mode)
	}
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("[batch].jobs must not be negative, got %d", c.Batch.Jobs)
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
