package marklog

import (
	"context"
	"runtime"
	"time"

	"pkt.systems/marklog/errors"
	"pkt.systems/marklog/level"
	"pkt.systems/marklog/render"
	"pkt.systems/marklog/scope"
)

// Entry is one event handed to Logger.Render.
type Entry struct {
	Level   level.Level
	EventID render.EventID
	// Message is a message template; Args fill its placeholders.
	Message string
	Args    []any
	Err     error
	// Time defaults to time.Now().
	Time time.Time
}

// Logger writes events for one category. A nil *Logger discards
// everything.
type Logger struct {
	provider *Provider
	category string
	minLevel level.Level
}

// Category returns the logger's category name.
func (l *Logger) Category() string {
	if l == nil {
		return ""
	}
	return l.category
}

// MinLevel returns the effective minimum level resolved for the category.
func (l *Logger) MinLevel() level.Level {
	if l == nil {
		return level.None
	}
	return l.minLevel
}

// Enabled reports whether events at lvl are rendered.
func (l *Logger) Enabled(lvl level.Level) bool {
	return l != nil && level.Enabled(lvl, l.minLevel)
}

// BeginScope pushes v onto the scope chain carried by ctx.
func (l *Logger) BeginScope(ctx context.Context, v any) (context.Context, scope.Release) {
	return scope.Begin(ctx, v)
}

// Render renders entry and commits it before returning. Events below the
// logger's minimum level, or dropped by the provider's filter, return nil
// without rendering. Renderer failures are returned as RENDER_FAILED and
// output failures as SINK_WRITE.
func (l *Logger) Render(ctx context.Context, entry Entry) error {
	return l.emit(ctx, entry, 1)
}

// Log renders an event at lvl and reports failures to the diagnostics
// channel.
func (l *Logger) Log(ctx context.Context, lvl level.Level, msg string, args ...any) {
	l.log(ctx, lvl, nil, msg, args)
}

// LogError renders an event at lvl carrying err for {Exception}.
func (l *Logger) LogError(ctx context.Context, lvl level.Level, err error, msg string, args ...any) {
	l.log(ctx, lvl, err, msg, args)
}

// Trace logs msg at level.Trace.
func (l *Logger) Trace(ctx context.Context, msg string, args ...any) {
	l.log(ctx, level.Trace, nil, msg, args)
}

// Debug logs msg at level.Debug.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, level.Debug, nil, msg, args)
}

// Info logs msg at level.Info.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, level.Info, nil, msg, args)
}

// Warn logs msg at level.Warn.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, level.Warn, nil, msg, args)
}

// Error logs msg at level.Error.
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, level.Error, nil, msg, args)
}

// Critical logs msg at level.Critical.
func (l *Logger) Critical(ctx context.Context, msg string, args ...any) {
	l.log(ctx, level.Critical, nil, msg, args)
}

func (l *Logger) log(ctx context.Context, lvl level.Level, err error, msg string, args []any) {
	if !l.Enabled(lvl) {
		return
	}
	entry := Entry{Level: lvl, Message: msg, Args: args, Err: err}
	if renderErr := l.emit(ctx, entry, 2); renderErr != nil {
		if errors.IsErrorCode(renderErr, errors.ErrSinkWrite) {
			l.provider.diag.SinkFailure(renderErr)
			return
		}
		l.provider.diag.RenderFailure(l.category, lvl.String(), renderErr)
	}
}

// emit runs the pipeline. depth is the number of marklog frames between
// emit and the logging call site.
func (l *Logger) emit(ctx context.Context, entry Entry, depth int) error {
	if !l.Enabled(entry.Level) {
		return nil
	}
	p := l.provider
	profile := p.Profile(entry.Level)
	e := render.Event{
		Category: l.category,
		Level:    entry.Level,
		EventID:  entry.EventID,
		Message:  entry.Message,
		Args:     entry.Args,
		Err:      entry.Err,
		Profile:  profile,
		Time:     entry.Time,
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	if ctx != nil {
		e.Scopes = scope.Values(ctx)
		e.Activity, _ = scope.ActivityFrom(ctx)
	}
	if p.opts.Filter != nil && !p.opts.Filter(&e) {
		return nil
	}

	pipeline := p.builder.Build(profile.OutputTemplate)
	if pipeline.NeedsCaller {
		if pc, _, _, ok := runtime.Caller(depth + 1); ok {
			e.CallerPC = pc
		}
	}

	margin := &p.margin
	if p.opts.ResetMarginPerEvent {
		margin = nil
	}
	b := render.AcquireBuffer(margin)
	defer render.ReleaseBuffer(b)

	if err := pipeline.Render(b, &e); err != nil {
		return errors.Wrap(err, errors.ErrRenderFailed, "render log event").
			WithDetail("category", l.category).
			WithDetail("level", entry.Level.String())
	}
	line := p.markup.Render(b.String())
	if _, err := p.sink.Write([]byte(line)); err != nil {
		if errors.IsErrorCode(err, errors.ErrSinkWrite) {
			return err
		}
		return errors.Wrap(err, errors.ErrSinkWrite, "write log event")
	}
	return nil
}
