// Package trace records what the evaluator does, for diagnosing slow or
// surprising runs.
//
// # Usage
//
//	rpncalc eval --trace=- --trace-level=detail "6 * (52 + 3) * 4"
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes each event immediately (file or stderr)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits driver and pass events (one Calc call, its tokenize,
// convert and evaluate passes). LevelDetail adds per-item events such as one
// line of a batch file. LevelDebug emits everything.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "tokenize", parentID)
//	defer span.End("")
package trace
