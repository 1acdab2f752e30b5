package marklog

import (
	"io"

	"pkt.systems/marklog/formatting"
	"pkt.systems/marklog/level"
	"pkt.systems/marklog/render"
	"pkt.systems/marklog/theme"
)

// DefaultTimeFormat is the timestamp format of the default output template.
const DefaultTimeFormat = "HH:mm:ss"

// Options controls how a Provider renders, filters and commits events.
type Options struct {
	// MinLevel is the minimum level for categories without an override.
	MinLevel level.Level

	// OutputTemplate replaces the theme's default template for every
	// level. Profiles configured with ConfigureProfile may still replace
	// it per level.
	OutputTemplate string

	// TimeFormat is the timestamp format used when a timestamp placeholder
	// carries none. Empty means the renderer default.
	TimeFormat string

	// Theme colours the default profiles. When nil, theme.Default is used.
	Theme *theme.Theme

	// NoColor forces plain output regardless of terminal detection.
	NoColor bool

	// ForceColor bypasses terminal detection and emits colour even when
	// the destination is not a TTY.
	ForceColor bool

	// UTC renders timestamps in UTC.
	UTC bool

	// Background commits lines from a single writer goroutine. Close or
	// Flush the provider to wait for queued lines.
	Background bool

	// QueueSize bounds the background queue; zero means
	// output.DefaultQueueSize.
	QueueSize int

	// ResetMarginPerEvent starts every event at margin zero instead of
	// keeping the margin left by the previous event.
	ResetMarginPerEvent bool

	// Filter, when set, sees every eligible event before rendering.
	// Returning false drops it.
	Filter func(e *render.Event) bool

	// Renderers are matched before the built-in renderers.
	Renderers []render.Descriptor

	// Fallback receives marklog's own diagnostics. Defaults to stderr.
	Fallback io.Writer

	overrides  level.Overrides
	profileFns []profileFn
}

type profileFn struct {
	all bool
	lvl level.Level
	fn  func(*render.Profile)
}

// DefaultOptions returns options with an Info minimum level and the default
// theme.
func DefaultOptions() Options {
	return Options{MinLevel: level.Info}
}

// SetMinimumLevel registers a minimum level for categories starting with
// prefix. The longest matching prefix wins.
func (o *Options) SetMinimumLevel(prefix string, lvl level.Level) error {
	return o.overrides.Set(prefix, lvl)
}

// MinimumLevels returns the registered category overrides.
func (o *Options) MinimumLevels() map[string]level.Level {
	return o.overrides.Map()
}

// ConfigureProfile queues fn to edit the profile of lvl once the provider
// builds its profiles. Calls run in registration order.
func (o *Options) ConfigureProfile(lvl level.Level, fn func(*render.Profile)) {
	if fn == nil {
		return
	}
	o.profileFns = append(o.profileFns, profileFn{lvl: lvl, fn: fn})
}

// ConfigureProfiles queues fn to edit the profile of every level.
func (o *Options) ConfigureProfiles(fn func(*render.Profile)) {
	if fn == nil {
		return
	}
	o.profileFns = append(o.profileFns, profileFn{all: true, fn: fn})
}

func (o Options) clone() Options {
	cp := o
	cp.overrides = *o.overrides.Clone()
	cp.profileFns = append([]profileFn(nil), o.profileFns...)
	cp.Renderers = append([]render.Descriptor(nil), o.Renderers...)
	return cp
}

// DefaultTemplate returns the output template the theme th uses.
func DefaultTemplate(th theme.Theme) string {
	open := theme.Wrap(th.Punctuation, "[[")
	end := theme.Wrap(th.Punctuation, "]]")
	return open + "{Timestamp} {Level}" + end + " {Category}" + theme.Wrap(th.Punctuation, ":") + " {Message}{NewLine}{Exception}"
}

func buildProfiles(opts Options) []*render.Profile {
	th := theme.Default
	if opts.Theme != nil {
		th = *opts.Theme
	}
	tmpl := opts.OutputTemplate
	if tmpl == "" {
		tmpl = DefaultTemplate(th)
	}
	timeFormat := opts.TimeFormat
	if timeFormat == "" {
		timeFormat = DefaultTimeFormat
	}
	profiles := make([]*render.Profile, len(level.All))
	for _, lvl := range level.All {
		p := render.NewProfile(lvl)
		p.OutputTemplate = tmpl
		seedProfile(p, th, timeFormat, opts.UTC)
		profiles[lvl] = p
	}
	for _, pf := range opts.profileFns {
		for _, p := range profiles {
			if pf.all || p.Level == pf.lvl {
				pf.fn(p)
			}
		}
	}
	return profiles
}

func seedProfile(p *render.Profile, th theme.Theme, timeFormat string, utc bool) {
	styles := []struct {
		tags  []formatting.Tag
		style string
	}{
		{[]formatting.Tag{formatting.TagString, formatting.TagStringer}, th.String},
		{formatting.NumericTags, th.Number},
		{[]formatting.Tag{formatting.TagDuration}, th.Number},
		{[]formatting.Tag{formatting.TagBool}, th.Bool},
		{[]formatting.Tag{formatting.TagNil}, th.Nil},
		{[]formatting.Tag{formatting.TagTime}, th.Time},
		{[]formatting.Tag{formatting.TagError}, th.ExceptionMessage},
	}
	for _, s := range styles {
		if s.style != "" {
			p.Formatting.AddTypeStyles(s.tags, s.style)
		}
	}
	render.ConfigureOptions(p, func(o *render.TimestampOptions) {
		o.Format = timeFormat
		o.UTC = utc
		o.Style = th.Timestamp
	})
	render.ConfigureOptions(p, func(o *render.LevelOptions) {
		o.Style = th.Level(p.Level)
	})
	render.ConfigureOptions(p, func(o *render.CategoryOptions) {
		o.Style = th.Category
	})
	render.ConfigureOptions(p, func(o *render.EventIDOptions) {
		o.Style = th.EventID
	})
	render.ConfigureOptions(p, func(o *render.ScopesOptions) {
		o.KeyStyle = th.Scope
		o.Style = th.Punctuation
	})
	render.ConfigureOptions(p, func(o *render.CallerOptions) {
		o.Style = th.Caller
	})
	render.ConfigureOptions(p, func(o *render.ActivityOptions) {
		o.Style = th.EventID
	})
	render.ConfigureOptions(p, func(o *render.ExceptionOptions) {
		o.TypeStyle = th.ExceptionType
		o.MessageStyle = th.ExceptionMessage
		o.FrameStyle = th.ExceptionFrame
		o.PathStyle = th.ExceptionPath
	})
}
