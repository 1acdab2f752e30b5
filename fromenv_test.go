package marklog_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/marklog"
	"pkt.systems/marklog/level"
)

func TestNewFromEnvOverridesOptions(t *testing.T) {
	t.Setenv("MARKLOG_TEST_LEVEL", "warn")
	t.Setenv("MARKLOG_TEST_LEVELS", "App.Db=debug, bogus")
	t.Setenv("MARKLOG_TEST_TEMPLATE", "{Level:u} {Category} {Message}{NewLine}")
	t.Setenv("MARKLOG_TEST_NO_COLOR", "true")

	var buf, diagnostics bytes.Buffer
	opts := marklog.DefaultOptions()
	opts.MinLevel = level.Trace
	opts.Fallback = &diagnostics
	p := marklog.NewFromEnv(
		marklog.WithEnvPrefix("MARKLOG_TEST_"),
		marklog.WithEnvWriter(&buf),
		marklog.WithEnvOptions(opts),
	)
	defer p.Close()
	ctx := context.Background()

	p.Logger("App.Web").Info(ctx, "suppressed")
	p.Logger("App.Web").Warn(ctx, "visible")
	p.Logger("App.Db").Debug(ctx, "query")

	want := "WARN App.Web visible\nDBUG App.Db query\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", got, want)
	}
	if !strings.Contains(diagnostics.String(), "bogus") {
		t.Fatalf("expected invalid override to be reported, got %q", diagnostics.String())
	}
}

func TestNewFromEnvOutputFileIsClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owned.log")
	t.Setenv("MARKLOG_OBS_OUTPUT", path)
	t.Setenv("MARKLOG_OBS_NO_COLOR", "1")
	t.Setenv("MARKLOG_OBS_TEMPLATE", "{Message}{NewLine}")
	t.Setenv("MARKLOG_OBS_BACKGROUND", "true")

	p := marklog.NewFromEnv(marklog.WithEnvPrefix("MARKLOG_OBS_"))
	p.Logger("App").Info(context.Background(), "before close")
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "before close\n" {
		t.Fatalf("unexpected file content %q", data)
	}

	p.Logger("App").Info(context.Background(), "after close")
	data, _ = os.ReadFile(path)
	if strings.Contains(string(data), "after close") {
		t.Fatalf("owned file should be closed, got %q", data)
	}
}

func TestNewFromEnvTeeStripsColour(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tee.log")
	t.Setenv("MARKLOG_TEE_OUTPUT", "default+"+path)
	t.Setenv("MARKLOG_TEE_FORCE_COLOR", "true")
	t.Setenv("MARKLOG_TEE_THEME", "dracula")
	t.Setenv("MARKLOG_TEE_TEMPLATE", "{Level} {Message}{NewLine}")

	var buf bytes.Buffer
	p := marklog.NewFromEnv(marklog.WithEnvPrefix("MARKLOG_TEE_"), marklog.WithEnvWriter(&buf))
	p.Logger("App").Error(context.Background(), "boom")
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("console side should be coloured, got %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "Fail boom\n" {
		t.Fatalf("file side should be plain, got %q", data)
	}
}

func TestNewFromEnvBadOutputFallsBack(t *testing.T) {
	t.Setenv("MARKLOG_BAD_OUTPUT", filepath.Join(t.TempDir(), "missing", "x.log"))
	t.Setenv("MARKLOG_BAD_NO_COLOR", "true")
	t.Setenv("MARKLOG_BAD_TEMPLATE", "{Message}{NewLine}")

	var buf, diagnostics bytes.Buffer
	opts := marklog.DefaultOptions()
	opts.Fallback = &diagnostics
	p := marklog.NewFromEnv(
		marklog.WithEnvPrefix("MARKLOG_BAD_"),
		marklog.WithEnvWriter(&buf),
		marklog.WithEnvOptions(opts),
	)
	defer p.Close()
	p.Logger("App").Info(context.Background(), "still here")

	if buf.String() != "still here\n" {
		t.Fatalf("expected fallback writer, got %q", buf.String())
	}
	if !strings.Contains(diagnostics.String(), "OUTPUT_OPEN") {
		t.Fatalf("expected output failure diagnostics, got %q", diagnostics.String())
	}
}
