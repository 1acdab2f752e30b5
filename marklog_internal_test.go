package marklog

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"pkt.systems/marklog/level"
)

// Helpers are marked noinline to keep their frames visible to
// runtime.Caller.

//go:noinline
func currentFnHelper() string {
	return CurrentFn()
}

type currentFnReceiver struct{}

//go:noinline
func (currentFnReceiver) ValueMethod() string {
	return CurrentFn()
}

func TestCurrentFn(t *testing.T) {
	if got := currentFnHelper(); got != "currentFnHelper" {
		t.Fatalf("unexpected function name %q", got)
	}
	if got := (currentFnReceiver{}).ValueMethod(); got != "ValueMethod" {
		t.Fatalf("unexpected method name %q", got)
	}
}

//go:noinline
func logFromHelper(l *Logger) {
	l.Info(context.Background(), "x")
}

//go:noinline
func renderFromHelper(l *Logger) error {
	return l.Render(context.Background(), Entry{Level: level.Info, Message: "y"})
}

func TestCallerIsLoggingCallSite(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.NoColor = true
	opts.OutputTemplate = "{Caller} {Caller:file} {Message}{NewLine}"
	p := New(&buf, opts)
	defer p.Close()
	if !p.Pipeline(opts.OutputTemplate).NeedsCaller {
		t.Fatalf("caller template should need the caller")
	}
	l := p.Logger("App")

	logFromHelper(l)
	if err := renderFromHelper(l); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "logFromHelper marklog_internal_test.go:") || !strings.HasSuffix(lines[0], " x") {
		t.Fatalf("unexpected caller line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "renderFromHelper marklog_internal_test.go:") || !strings.HasSuffix(lines[1], " y") {
		t.Fatalf("unexpected caller line %q", lines[1])
	}
}

func TestClassifyLineLevel(t *testing.T) {
	cases := []struct {
		line string
		lvl  level.Level
		msg  string
	}{
		{"[error] broken", level.Error, "broken"},
		{"[WARN]disk", level.Warn, "disk"},
		{"warning: low memory", level.Warn, "low memory"},
		{"Debug - cache miss", level.Debug, "cache miss"},
		{"information: ready", level.Info, "ready"},
		{"INFO started", level.Info, "started"},
		{"errors were retried", level.Info, "errors were retried"},
		{"informal note", level.Info, "informal note"},
		{"[nope] x", level.Info, "[nope] x"},
		{"hello", level.Info, "hello"},
	}
	for _, c := range cases {
		lvl, msg := classifyLineLevel(c.line)
		if lvl != c.lvl || msg != c.msg {
			t.Fatalf("classify %q = (%v, %q), want (%v, %q)", c.line, lvl, msg, c.lvl, c.msg)
		}
	}
}

func TestParseEnvBool(t *testing.T) {
	for input, want := range map[string]bool{"1": true, " true ": true, "FALSE": false, "0": false} {
		got, ok := parseEnvBool(input)
		if !ok || got != want {
			t.Fatalf("parseEnvBool(%q) = %v, %v", input, got, ok)
		}
	}
	if _, ok := parseEnvBool("maybe"); ok {
		t.Fatalf("expected invalid bool")
	}
}

func TestOptionsCloneIsIndependent(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.SetMinimumLevel("App", level.Warn); err != nil {
		t.Fatalf("set: %v", err)
	}
	cp := opts.clone()
	if err := cp.SetMinimumLevel("Db", level.Error); err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(opts.MinimumLevels()) != 1 || len(cp.MinimumLevels()) != 2 {
		t.Fatalf("clone shares overrides: %v %v", opts.MinimumLevels(), cp.MinimumLevels())
	}
}
