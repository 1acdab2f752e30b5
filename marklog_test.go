package marklog_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"pkt.systems/marklog"
	mlerrors "pkt.systems/marklog/errors"
	"pkt.systems/marklog/level"
	"pkt.systems/marklog/render"
	"pkt.systems/marklog/scope"
	"pkt.systems/marklog/template"
	"pkt.systems/marklog/theme"
)

func plainOptions(tmpl string) marklog.Options {
	opts := marklog.DefaultOptions()
	opts.NoColor = true
	opts.OutputTemplate = tmpl
	return opts
}

func newPlain(t *testing.T, tmpl string, edit func(*marklog.Options)) (*marklog.Provider, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	opts := plainOptions(tmpl)
	if edit != nil {
		edit(&opts)
	}
	p := marklog.New(&buf, opts)
	t.Cleanup(func() { _ = p.Close() })
	return p, &buf
}

func TestRenderUsesLevelTemplate(t *testing.T) {
	p, buf := newPlain(t, "{Level} {Category}: {Message}{NewLine}", nil)
	log := p.Logger("App")

	log.Info(context.Background(), "hello {Name}", "bob")
	log.Warn(context.Background(), "disk at {Percent:P0}", 0.93)

	want := "Info App: hello bob\nWarn App: disk at 93%\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", got, want)
	}
}

func TestDefaultTemplatePlain(t *testing.T) {
	var buf bytes.Buffer
	opts := marklog.DefaultOptions()
	opts.NoColor = true
	opts.Theme = &theme.Plain
	opts.TimeFormat = "'T'"
	p := marklog.New(&buf, opts)
	defer p.Close()

	p.Logger("Checkout").Error(context.Background(), "payment {Id} declined", 42)

	want := "[T Fail] Checkout: payment 42 declined\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", got, want)
	}
}

func TestMinimumLevelOverrides(t *testing.T) {
	p, buf := newPlain(t, "{Category} {Message}{NewLine}", func(o *marklog.Options) {
		if err := o.SetMinimumLevel("App.Db", level.Warn); err != nil {
			t.Fatalf("set override: %v", err)
		}
		if err := o.SetMinimumLevel("App.Db.Migrations", level.Trace); err != nil {
			t.Fatalf("set override: %v", err)
		}
	})
	ctx := context.Background()

	db := p.Logger("App.Db.Query")
	if db.MinLevel() != level.Warn {
		t.Fatalf("expected warn, got %v", db.MinLevel())
	}
	db.Info(ctx, "suppressed")
	db.Warn(ctx, "slow")
	p.Logger("app.db.migrations.v2").Debug(ctx, "step")
	p.Logger("App.Web").Debug(ctx, "suppressed")
	p.Logger("App.Web").Info(ctx, "request")

	want := "App.Db.Query slow\napp.db.migrations.v2 step\nApp.Web request\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", got, want)
	}
}

func TestSetMinimumLevelRejectsDuplicates(t *testing.T) {
	opts := marklog.DefaultOptions()
	if err := opts.SetMinimumLevel("App", level.Warn); err != nil {
		t.Fatalf("set: %v", err)
	}
	err := opts.SetMinimumLevel("APP", level.Error)
	if !mlerrors.IsErrorCode(err, mlerrors.ErrDuplicateOverride) {
		t.Fatalf("expected DUPLICATE_OVERRIDE, got %v", err)
	}
	err = opts.SetMinimumLevel("", level.Error)
	if !mlerrors.IsErrorCode(err, mlerrors.ErrInvalidOverride) {
		t.Fatalf("expected INVALID_OVERRIDE, got %v", err)
	}
	if got := opts.MinimumLevels(); len(got) != 1 || got["App"] != level.Warn {
		t.Fatalf("unexpected overrides %v", got)
	}
}

func TestNoneNeverEmits(t *testing.T) {
	p, buf := newPlain(t, "{Message}", func(o *marklog.Options) { o.MinLevel = level.Trace })
	log := p.Logger("x")
	if log.Enabled(level.None) {
		t.Fatalf("None must never be enabled")
	}
	if err := log.Render(context.Background(), marklog.Entry{Level: level.None, Message: "x"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestFilterDropsEvents(t *testing.T) {
	p, buf := newPlain(t, "{Message}{NewLine}", func(o *marklog.Options) {
		o.Filter = func(e *render.Event) bool {
			return !strings.HasPrefix(e.Category, "Noisy")
		}
	})
	ctx := context.Background()
	p.Logger("Noisy.Poller").Info(ctx, "tick")
	p.Logger("Quiet").Info(ctx, "kept")
	if got := buf.String(); got != "kept\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRendererErrorIsReported(t *testing.T) {
	boom := errors.New("boom")
	var diagnostics bytes.Buffer
	p, buf := newPlain(t, "{Message} {Explode}{NewLine}", func(o *marklog.Options) {
		o.Fallback = &diagnostics
		o.Renderers = []render.Descriptor{{
			Name:    "Explode",
			Pattern: render.KeyPattern("Explode"),
			Factory: func(template.Segment) (render.Renderer, error) {
				return render.RendererFunc(func(*render.Buffer, *render.Event) error { return boom }), nil
			},
		}}
	})
	log := p.Logger("App")

	for i := 0; i < 2; i++ {
		err := log.Render(context.Background(), marklog.Entry{Level: level.Info, Message: "hi"})
		if !mlerrors.IsErrorCode(err, mlerrors.ErrRenderFailed) || !errors.Is(err, boom) {
			t.Fatalf("expected RENDER_FAILED wrapping boom, got %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Fatalf("failed render must not write, got %q", buf.String())
	}

	log.Info(context.Background(), "fire and forget")
	if !strings.Contains(diagnostics.String(), "log event render failed") {
		t.Fatalf("expected diagnostics, got %q", diagnostics.String())
	}
}

func TestRendererPanicReleasesBuffer(t *testing.T) {
	p, buf := newPlain(t, "{Message}{Fragile}{NewLine}", func(o *marklog.Options) {
		o.Renderers = []render.Descriptor{{
			Name:    "Fragile",
			Pattern: render.KeyPattern("Fragile"),
			Factory: func(template.Segment) (render.Renderer, error) {
				return render.RendererFunc(func(b *render.Buffer, e *render.Event) error {
					if e.Message == "half" {
						panic("fragile renderer")
					}
					b.WriteText("!")
					return nil
				}), nil
			},
		}}
	})
	log := p.Logger("App")
	before := render.BufferPoolStats()

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("expected the renderer panic to propagate")
			}
		}()
		_ = log.Render(context.Background(), marklog.Entry{Level: level.Info, Message: "half"})
	}()
	if got := render.BufferPoolStats(); got.Outstanding() != before.Outstanding() {
		t.Fatalf("buffer not released after panic: before %+v after %+v", before, got)
	}

	if err := log.Render(context.Background(), marklog.Entry{Level: level.Info, Message: "whole"}); err != nil {
		t.Fatalf("render after panic: %v", err)
	}
	if got := buf.String(); got != "whole!\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestUnknownPlaceholderPassesThrough(t *testing.T) {
	p, buf := newPlain(t, "{Level,-6}|{Unknown,5:x}|{{literal}}{NewLine}", nil)
	p.Logger("x").Info(context.Background(), "ignored")
	if got := buf.String(); got != "Info  |{Unknown,5:x}|{literal}\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestScopesRenderInnermostFirst(t *testing.T) {
	p, buf := newPlain(t, "{Scopes}: {Message}{NewLine}", nil)
	log := p.Logger("App")

	ctx, releaseOuter := log.BeginScope(context.Background(), "request")
	ctx, releaseInner := log.BeginScope(ctx, scope.KV("id", 7))
	log.Info(ctx, "inside")
	releaseInner()
	log.Info(ctx, "after inner")
	releaseOuter()
	log.Info(ctx, "after outer")

	want := "id=7 => request: inside\nrequest: after inner\n: after outer\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", got, want)
	}
}

func TestScopeValueAndActivity(t *testing.T) {
	p, buf := newPlain(t, "{Scope.user} {ActivityId} {Message}{NewLine}", nil)
	log := p.Logger("App")
	ctx := scope.WithActivity(context.Background(), "act-1")
	ctx, release := log.BeginScope(ctx, map[string]any{"user": "alice"})
	defer release()
	log.Info(ctx, "ok")
	if got := buf.String(); got != "alice act-1 ok\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestMarginPersistsAcrossEvents(t *testing.T) {
	p, buf := newPlain(t, "{Margin+2}{Message}{NewLine}", nil)
	log := p.Logger("App")
	ctx := context.Background()
	log.Info(ctx, "a")
	log.Info(ctx, "b")
	log.Info(ctx, "c")
	if got := buf.String(); got != "a\n  b\n    c\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestMarginResetPerEvent(t *testing.T) {
	p, buf := newPlain(t, "{Margin+2}{Message}{NewLine}{Message}{NewLine}", func(o *marklog.Options) {
		o.ResetMarginPerEvent = true
	})
	log := p.Logger("App")
	ctx := context.Background()
	log.Info(ctx, "a")
	log.Info(ctx, "b")
	if got := buf.String(); got != "a\n  a\nb\n  b\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestConfigureProfilePerLevel(t *testing.T) {
	p, buf := newPlain(t, "{Message}{NewLine}", func(o *marklog.Options) {
		o.ConfigureProfile(level.Error, func(p *render.Profile) {
			p.OutputTemplate = "!! {Message}{NewLine}{Exception}"
		})
		o.ConfigureProfiles(func(p *render.Profile) {
			p.Formatting.AddTypeFormatter("bool", func(v any) string {
				if v.(bool) {
					return "yes"
				}
				return "no"
			})
		})
	})
	log := p.Logger("App")
	ctx := context.Background()
	log.Info(ctx, "ready={Ready}", true)
	log.LogError(ctx, level.Error, fmt.Errorf("boom"), "failed={Ready}", false)

	want := "ready=yes\n!! failed=no\n*errors.errorString: boom\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", got, want)
	}
	if p.Profile(level.Error).OutputTemplate == p.Profile(level.Info).OutputTemplate {
		t.Fatalf("profiles should differ")
	}
}

func TestPreserveMarkupInFormatStrings(t *testing.T) {
	p, buf := newPlain(t, "{Message}{NewLine}", func(o *marklog.Options) {
		o.ConfigureProfile(level.Info, func(p *render.Profile) {
			p.PreserveMarkupInFormatStrings = true
		})
	})
	log := p.Logger("App")
	ctx := context.Background()
	log.Info(ctx, "[bold]{Name}[/]", "[x]")
	log.Warn(ctx, "[bold]{Name}[/]", "[x]")
	if got := buf.String(); got != "[x]\n[bold][x][/]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestForceColorEmitsANSI(t *testing.T) {
	var buf bytes.Buffer
	opts := marklog.DefaultOptions()
	opts.ForceColor = true
	opts.OutputTemplate = "{Level} {Message}{NewLine}"
	p := marklog.New(&buf, opts)
	defer p.Close()

	p.Logger("App").Error(context.Background(), "value {N}", 3)
	out := buf.String()
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected ANSI sequences, got %q", out)
	}
	if !strings.HasSuffix(out, "\n") || strings.Count(out, "\n") != 1 {
		t.Fatalf("expected one line, got %q", out)
	}
}

func TestBackgroundKeepsOrderAndDrainsOnClose(t *testing.T) {
	var buf bytes.Buffer
	opts := plainOptions("{Message}{NewLine}")
	opts.Background = true
	opts.QueueSize = 8
	p := marklog.New(&buf, opts)
	log := p.Logger("App")
	ctx := context.Background()

	var want strings.Builder
	for i := 0; i < 100; i++ {
		log.Info(ctx, "line {N}", i)
		fmt.Fprintf(&want, "line %d\n", i)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if buf.String() != want.String() {
		t.Fatalf("background output out of order or incomplete")
	}

	log.Info(ctx, "late")
	if !strings.HasSuffix(buf.String(), "line 99\nlate\n") {
		t.Fatalf("expected synchronous write after close, got tail %q", buf.String()[buf.Len()-20:])
	}
}

func TestConcurrentLoggingKeepsLinesWhole(t *testing.T) {
	p, buf := newPlain(t, "{Category}:{Message}{NewLine}", nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log := p.Logger(fmt.Sprintf("w%d", i))
			for j := 0; j < 50; j++ {
				log.Info(context.Background(), "tick")
			}
		}(i)
	}
	wg.Wait()
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 400 {
		t.Fatalf("expected 400 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "w") || !strings.HasSuffix(line, ":tick") {
			t.Fatalf("interleaved line %q", line)
		}
	}
	if stats := p.Stats(); stats.Lines != 400 || stats.Failures != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestCloseLeavesCallerWriterOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caller.log")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	p := marklog.New(f, plainOptions("{Message}{NewLine}"))
	p.Logger("App").Info(context.Background(), "one")
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := f.WriteString("two\n"); err != nil {
		t.Fatalf("caller file should stay open: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "one\ntwo\n" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestContextLogger(t *testing.T) {
	p, buf := newPlain(t, "{Message}{NewLine}", nil)
	ctx := marklog.ContextWithLogger(context.Background(), p.Logger("App"))
	marklog.Ctx(ctx).Info(ctx, "from context")

	missing := marklog.LoggerFromContext(context.Background())
	missing.Info(context.Background(), "dropped")
	if missing.Enabled(level.Critical) {
		t.Fatalf("nil logger should be disabled")
	}
	if got := buf.String(); got != "from context\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestStdLoggerBridge(t *testing.T) {
	p, buf := newPlain(t, "{Level} {Message}{NewLine}", nil)
	std := marklog.StdLogger(p.Logger("std"))
	std.Print("[warn] disk {almost} full")
	std.Print("plain line")

	pinned := marklog.StdLoggerWithLevel(p.Logger("std"), level.Error)
	pinned.Print("warn: not parsed")

	want := "Warn disk {almost} full\nInfo plain line\nFail warn: not parsed\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", got, want)
	}
}
