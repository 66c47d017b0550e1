package calc

import (
	"rpncalc/internal/diag"
	"rpncalc/internal/observ"
	"rpncalc/internal/source"
)

// Option configures evaluation.
type Option func(*config)

type config struct {
	reporter diag.Reporter
	timer    *observ.Timer
	files    *source.FileSet
	name     string
}

func newConfig(opts []Option) config {
	cfg := config{name: "<expr>"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithReporter sends every diagnostic of the pipeline to r.
func WithReporter(r diag.Reporter) Option {
	return func(c *config) { c.reporter = r }
}

// WithTimer records tokenize/convert/evaluate durations in t.
func WithTimer(t *observ.Timer) Option {
	return func(c *config) { c.timer = t }
}

// WithFileSet registers evaluated expressions in fs so that diagnostic spans
// can be resolved by the caller.
func WithFileSet(fs *source.FileSet) Option {
	return func(c *config) { c.files = fs }
}

// WithSourceName sets the name under which expressions are registered.
func WithSourceName(name string) Option {
	return func(c *config) { c.name = name }
}
