// Package config loads marklog settings from defaults, a YAML or TOML file
// and MARKLOG_* environment variables, in that order of precedence, and
// turns them into marklog.Options.
package config

import (
	"io"
	"strings"

	"pkt.systems/marklog"
	"pkt.systems/marklog/errors"
	"pkt.systems/marklog/level"
	"pkt.systems/marklog/output"
	"pkt.systems/marklog/render"
	"pkt.systems/marklog/theme"
)

// Config is the file and environment representation of marklog.Options.
type Config struct {
	Level       level.Level            `koanf:"level" yaml:"level" toml:"level"`
	Levels      map[string]level.Level `koanf:"levels" yaml:"levels,omitempty" toml:"levels,omitempty"`
	Template    string                 `koanf:"template" yaml:"template,omitempty" toml:"template,omitempty"`
	Templates   map[string]string      `koanf:"templates" yaml:"templates,omitempty" toml:"templates,omitempty"`
	TimeFormat  string                 `koanf:"time_format" yaml:"time_format,omitempty" toml:"time_format,omitempty"`
	Theme       string                 `koanf:"theme" yaml:"theme" toml:"theme"`
	Output      string                 `koanf:"output" yaml:"output" toml:"output"`
	NoColor     bool                   `koanf:"no_color" yaml:"no_color" toml:"no_color"`
	ForceColor  bool                   `koanf:"force_color" yaml:"force_color" toml:"force_color"`
	UTC         bool                   `koanf:"utc" yaml:"utc" toml:"utc"`
	Background  bool                   `koanf:"background" yaml:"background" toml:"background"`
	QueueSize   int                    `koanf:"queue_size" yaml:"queue_size" toml:"queue_size"`
	ResetMargin bool                   `koanf:"reset_margin" yaml:"reset_margin" toml:"reset_margin"`
	// PreserveMarkup lets message templates carry style tags.
	PreserveMarkup bool            `koanf:"preserve_markup" yaml:"preserve_markup" toml:"preserve_markup"`
	ShortCategory  bool            `koanf:"short_category" yaml:"short_category" toml:"short_category"`
	Exception      ExceptionConfig `koanf:"exception" yaml:"exception" toml:"exception"`
}

// ExceptionConfig mirrors render.ExceptionOptions.
type ExceptionConfig struct {
	HideType        bool `koanf:"hide_type" yaml:"hide_type" toml:"hide_type"`
	HideStackTrace  bool `koanf:"hide_stack_trace" yaml:"hide_stack_trace" toml:"hide_stack_trace"`
	MaxStackFrames  int  `koanf:"max_stack_frames" yaml:"max_stack_frames" toml:"max_stack_frames"`
	FullPaths       bool `koanf:"full_paths" yaml:"full_paths" toml:"full_paths"`
	HideLineNumbers bool `koanf:"hide_line_numbers" yaml:"hide_line_numbers" toml:"hide_line_numbers"`
	MaxDepth        int  `koanf:"max_depth" yaml:"max_depth" toml:"max_depth"`
}

// Options converts the configuration into provider options. Unknown themes
// and bad level overrides are CONFIG_PARSE errors.
func (c *Config) Options() (marklog.Options, error) {
	opts := marklog.DefaultOptions()
	opts.MinLevel = c.Level
	opts.OutputTemplate = c.Template
	opts.TimeFormat = c.TimeFormat
	opts.NoColor = c.NoColor
	opts.ForceColor = c.ForceColor
	opts.UTC = c.UTC
	opts.Background = c.Background
	opts.QueueSize = c.QueueSize
	opts.ResetMarginPerEvent = c.ResetMargin

	if name := strings.TrimSpace(c.Theme); name != "" {
		th, ok := theme.Lookup(name)
		if !ok {
			return opts, errors.Newf(errors.ErrConfigParse, "unknown theme %q", name).WithDetail("theme", name)
		}
		opts.Theme = th
	}
	for _, category := range sortedKeys(c.Levels) {
		if err := opts.SetMinimumLevel(category, c.Levels[category]); err != nil {
			return opts, errors.Wrapf(err, errors.ErrConfigParse, "levels.%s", category)
		}
	}
	for _, name := range sortedKeys(c.Templates) {
		lvl, ok := level.Parse(name)
		if !ok || lvl == level.None {
			return opts, errors.Newf(errors.ErrConfigParse, "templates: unknown level %q", name).WithDetail("level", name)
		}
		tmpl := c.Templates[name]
		opts.ConfigureProfile(lvl, func(p *render.Profile) {
			p.OutputTemplate = tmpl
		})
	}

	exc := c.Exception
	preserve := c.PreserveMarkup
	short := c.ShortCategory
	opts.ConfigureProfiles(func(p *render.Profile) {
		p.PreserveMarkupInFormatStrings = preserve
		render.ConfigureOptions(p, func(o *render.CategoryOptions) {
			o.ShortName = short
		})
		render.ConfigureOptions(p, func(o *render.ExceptionOptions) {
			o.HideType = exc.HideType
			o.HideStackTrace = exc.HideStackTrace
			o.MaxStackFrames = exc.MaxStackFrames
			o.FullPaths = exc.FullPaths
			o.HideLineNumbers = exc.HideLineNumbers
			o.MaxDepth = exc.MaxDepth
		})
	})
	return opts, nil
}

// Writer resolves Output against base. See output.Open for the syntax.
func (c *Config) Writer(base io.Writer) (io.Writer, error) {
	return output.Open(c.Output, base)
}

// NewProvider builds a provider from the configuration. base is the writer
// "default" refers to.
func (c *Config) NewProvider(base io.Writer) (*marklog.Provider, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	w, err := c.Writer(base)
	if err != nil {
		return nil, err
	}
	return marklog.New(w, opts), nil
}
