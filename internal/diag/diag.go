// Package diag is marklog's own diagnostics channel. Failures that cannot be
// returned to a caller (sink errors from the background writer, render
// errors from fire-and-forget log calls, unusable env configuration) are
// reported here instead of being dropped.
package diag

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Reporter writes diagnostics as console lines via zerolog.
type Reporter struct {
	logger zerolog.Logger
}

// New returns a reporter writing to w, or stderr when w is nil.
func New(w io.Writer, noColor bool) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}
	return &Reporter{logger: zerolog.New(console).With().Timestamp().Str("component", "marklog").Logger()}
}

// Discard returns a reporter that drops everything.
func Discard() *Reporter {
	return &Reporter{logger: zerolog.Nop()}
}

// Logger exposes the underlying zerolog logger.
func (r *Reporter) Logger() zerolog.Logger {
	if r == nil {
		return zerolog.Nop()
	}
	return r.logger
}

// SinkFailure reports a failed write of a committed line.
func (r *Reporter) SinkFailure(err error) {
	if r == nil || err == nil {
		return
	}
	r.logger.Error().Err(err).Msg("log sink write failed")
}

// RenderFailure reports an event that could not be rendered.
func (r *Reporter) RenderFailure(category, lvl string, err error) {
	if r == nil || err == nil {
		return
	}
	r.logger.Error().
		Err(err).
		Str("category", category).
		Str("level", lvl).
		Msg("log event render failed")
}

// OutputFailure reports an output spec that could not be opened. The
// logger keeps writing to fallback.
func (r *Reporter) OutputFailure(spec string, err error) {
	if r == nil || err == nil {
		return
	}
	r.logger.Warn().
		Err(err).
		Str("output", spec).
		Msg("failed to open log output, using default writer")
}

// InvalidSetting reports an environment or config value that was ignored.
func (r *Reporter) InvalidSetting(key, value string) {
	if r == nil {
		return
	}
	r.logger.Warn().
		Str("key", key).
		Str("value", value).
		Msg("ignoring invalid setting")
}
