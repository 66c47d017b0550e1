package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(strings.ToUpper(s))
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Fatalf("round trip: expected %q, got %q", s, l.String())
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		kind  Kind
		scope Scope
		want  bool
	}{
		{LevelOff, KindError, ScopeDriver, false},
		{LevelError, KindSpanBegin, ScopeDriver, false},
		{LevelError, KindError, ScopeToken, true},
		{LevelPhase, KindSpanBegin, ScopePass, true},
		{LevelPhase, KindSpanBegin, ScopeItem, false},
		{LevelDetail, KindSpanEnd, ScopeItem, true},
		{LevelDetail, KindPoint, ScopeToken, false},
		{LevelDebug, KindPoint, ScopeToken, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.kind, tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v, %v) = %v, want %v", tt.level, tt.kind, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "calc", 0)
	pass := Begin(tr, ScopePass, "tokenize", root.ID())
	pass.WithExtra("tokens", "3").End("")
	Begin(tr, ScopeItem, "hidden", root.ID()).End("")
	root.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ driver calc") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[2], "← pass tokenize {tokens=3}") {
		t.Errorf("unexpected pass end line %q", lines[2])
	}
	if !strings.Contains(lines[3], "(ok)") {
		t.Errorf("expected detail on root end, got %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Error(tr, ScopePass, "evaluate", errors.New("division by zero"), 0)

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["kind"] != "error" || ev["detail"] != "division by zero" || ev["scope"] != "pass" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(tr, ScopeItem, name, "", 0)
	}
	snap := tr.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("event %d: expected %q, got %q", i, want, snap[i].Name)
		}
	}
	var buf bytes.Buffer
	if err := tr.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("expected 3 dumped lines, got %q", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelDebug)
	multi := NewMultiTracer(LevelDebug, NewStreamTracer(&buf, LevelDebug, FormatText), ring)
	Point(multi, ScopeDriver, "batch", "2 lines", 0)
	if len(ring.Snapshot()) != 1 || !strings.Contains(buf.String(), "batch") {
		t.Fatalf("event did not reach both tracers")
	}
}

func TestNopAndContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop tracer by default")
	}
	span := Begin(Nop, ScopeDriver, "calc", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Fatalf("nop spans must be inert")
	}

	ring := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatalf("tracer not propagated")
	}
	root := Begin(ring, ScopeDriver, "calc", 0)
	if CurrentSpan(WithSpan(ctx, root)) != root.ID() {
		t.Fatalf("span not propagated")
	}
	if CurrentSpan(ctx) != 0 {
		t.Fatalf("expected no span in bare context")
	}
}

func TestNewConfig(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("level off must return Nop, got %v %v", tr, err)
	}
	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := tr.(*MultiTracer); !ok {
		t.Fatalf("ModeBoth should build a MultiTracer, got %T", tr)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
}
