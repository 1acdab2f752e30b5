package marklog

import (
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"

	"pkt.systems/marklog/internal/diag"
	"pkt.systems/marklog/level"
	"pkt.systems/marklog/markup"
	"pkt.systems/marklog/output"
	"pkt.systems/marklog/render"
)

// Provider owns everything loggers share: profiles, the pipeline cache, the
// margin left by the last finished event and the output sink.
type Provider struct {
	opts     Options
	profiles []*render.Profile
	builder  *render.Builder
	markup   *markup.Renderer
	sink     output.Sink
	observed *output.ObservedWriter
	diag     *diag.Reporter
	margin   render.Margin

	closeOnce sync.Once
	closeErr  error
}

// New builds a provider writing to w. A nil w discards output. w is not
// closed by Close unless it was opened by marklog (see output.Open).
func New(w io.Writer, opts Options) *Provider {
	if w == nil {
		w = io.Discard
	}
	opts = opts.clone()
	p := &Provider{
		opts:     opts,
		profiles: buildProfiles(opts),
		diag:     diag.New(opts.Fallback, opts.NoColor),
	}
	registry := render.NewRegistry(append(opts.Renderers, render.Builtins()...)...)
	p.builder = render.NewBuilder(registry)

	profile := colorProfile(w, opts)
	p.markup = markup.NewRenderer(profile)
	if f, ok := w.(*os.File); ok && profile != termenv.Ascii {
		w = output.Console(f)
	}
	p.observed = output.NewObservedWriter(w, nil)
	if opts.Background {
		p.sink = output.NewBackground(p.observed, opts.QueueSize, p.diag.SinkFailure)
	} else {
		p.sink = output.NewSynchronous(p.observed)
	}
	return p
}

// Logger returns a logger for category. Its minimum level is resolved once
// from the category overrides.
func (p *Provider) Logger(category string) *Logger {
	return &Logger{
		provider: p,
		category: category,
		minLevel: p.opts.overrides.Resolve(category, p.opts.MinLevel),
	}
}

// Profile returns the profile used for lvl. Profiles must not be modified
// after New.
func (p *Provider) Profile(lvl level.Level) *render.Profile {
	if int(lvl) < 0 || int(lvl) >= len(p.profiles) {
		return p.profiles[level.Info]
	}
	return p.profiles[lvl]
}

// Pipeline returns the compiled pipeline for tmpl.
func (p *Provider) Pipeline(tmpl string) *render.Pipeline {
	return p.builder.Build(tmpl)
}

// ColorProfile reports the terminal colour profile lines are rendered with.
func (p *Provider) ColorProfile() termenv.Profile {
	return p.markup.Profile()
}

// Stats returns the line and failure counters of the output.
func (p *Provider) Stats() output.SinkStats {
	return p.observed.Stats()
}

// Flush waits for queued lines to be written.
func (p *Provider) Flush() error {
	return p.sink.Flush()
}

// Close flushes and stops the output, closing it when marklog opened it.
// Events logged after Close are written synchronously.
func (p *Provider) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.sink.Close()
	})
	return p.closeErr
}

func colorProfile(w io.Writer, opts Options) termenv.Profile {
	if opts.NoColor {
		return termenv.Ascii
	}
	if !opts.ForceColor && !output.IsTerminal(w) {
		return termenv.Ascii
	}
	profile := termenv.NewOutput(w, termenv.WithTTY(true)).EnvColorProfile()
	if profile == termenv.Ascii && opts.ForceColor {
		profile = termenv.ANSI256
	}
	return profile
}
