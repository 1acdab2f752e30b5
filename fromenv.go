package marklog

import (
	"io"
	"os"
	"strconv"
	"strings"

	"pkt.systems/marklog/internal/diag"
	"pkt.systems/marklog/level"
	"pkt.systems/marklog/output"
	"pkt.systems/marklog/theme"
)

// DefaultEnvPrefix prefixes the variables read by NewFromEnv.
const DefaultEnvPrefix = "MARKLOG_"

// EnvOption customizes NewFromEnv behavior.
type EnvOption func(*envConfig)

type envConfig struct {
	prefix  string
	options Options
	seeded  bool
	writer  io.Writer
}

// WithEnvPrefix overrides the environment variable prefix used by
// NewFromEnv.
func WithEnvPrefix(prefix string) EnvOption {
	return func(cfg *envConfig) {
		cfg.prefix = prefix
	}
}

// WithEnvOptions seeds NewFromEnv with explicit Options values.
func WithEnvOptions(opts Options) EnvOption {
	return func(cfg *envConfig) {
		cfg.options = opts
		cfg.seeded = true
	}
}

// WithEnvWriter seeds NewFromEnv with a default output writer.
func WithEnvWriter(w io.Writer) EnvOption {
	return func(cfg *envConfig) {
		cfg.writer = w
	}
}

// NewFromEnv builds a provider from environment variables, allowing optional
// seeded options and writers. Environment values override supplied options.
//
// Recognised variables are: {prefix}LEVEL, LEVELS (comma separated
// category=level overrides), TEMPLATE, TIME_FORMAT, NO_COLOR, FORCE_COLOR,
// THEME, UTC, BACKGROUND, QUEUE_SIZE, RESET_MARGIN and OUTPUT. OUTPUT accepts
// stdout, stderr, default, a file path, or stdout+/stderr+/default+<path> to
// tee. Files opened through OUTPUT are closed by Provider.Close.
func NewFromEnv(opts ...EnvOption) *Provider {
	cfg := envConfig{prefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	resolved := cfg.options.clone()
	if !cfg.seeded {
		resolved = DefaultOptions()
	}
	baseWriter := cfg.writer
	if baseWriter == nil {
		baseWriter = os.Stdout
	}
	report := diag.New(resolved.Fallback, resolved.NoColor)
	prefix := cfg.prefix

	if value, ok := lookupEnv(prefix, "LEVEL"); ok {
		if lvl, ok := level.Parse(value); ok {
			resolved.MinLevel = lvl
		} else {
			report.InvalidSetting(prefix+"LEVEL", value)
		}
	}
	if value, ok := lookupEnv(prefix, "LEVELS"); ok {
		for _, item := range strings.Split(value, ",") {
			if strings.TrimSpace(item) == "" {
				continue
			}
			category, name, found := strings.Cut(item, "=")
			lvl, ok := level.Parse(name)
			if !found || !ok {
				report.InvalidSetting(prefix+"LEVELS", item)
				continue
			}
			if err := resolved.SetMinimumLevel(category, lvl); err != nil {
				report.InvalidSetting(prefix+"LEVELS", item)
			}
		}
	}
	if value, ok := lookupEnv(prefix, "TEMPLATE"); ok && value != "" {
		resolved.OutputTemplate = value
	}
	if value, ok := lookupEnv(prefix, "TIME_FORMAT"); ok {
		if parsed := strings.TrimSpace(value); parsed != "" {
			resolved.TimeFormat = parsed
		}
	}
	envBool(report, prefix, "NO_COLOR", &resolved.NoColor)
	envBool(report, prefix, "FORCE_COLOR", &resolved.ForceColor)
	envBool(report, prefix, "UTC", &resolved.UTC)
	envBool(report, prefix, "BACKGROUND", &resolved.Background)
	envBool(report, prefix, "RESET_MARGIN", &resolved.ResetMarginPerEvent)
	if value, ok := lookupEnv(prefix, "QUEUE_SIZE"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
			resolved.QueueSize = n
		} else {
			report.InvalidSetting(prefix+"QUEUE_SIZE", value)
		}
	}
	if value, ok := lookupEnv(prefix, "THEME"); ok {
		if th, ok := theme.Lookup(value); ok {
			resolved.Theme = th
		} else {
			report.InvalidSetting(prefix+"THEME", value)
		}
	}

	writer := baseWriter
	if value, ok := lookupEnv(prefix, "OUTPUT"); ok {
		opened, err := output.Open(value, baseWriter)
		if err != nil {
			report.OutputFailure(strings.TrimSpace(value), err)
		}
		writer = opened
	}
	return New(writer, resolved)
}

func lookupEnv(prefix, key string) (string, bool) {
	if prefix == "" {
		return os.LookupEnv(key)
	}
	return os.LookupEnv(prefix + key)
}

func parseEnvBool(value string) (bool, bool) {
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}

func envBool(report *diag.Reporter, prefix, key string, dst *bool) {
	value, ok := lookupEnv(prefix, key)
	if !ok {
		return
	}
	parsed, ok := parseEnvBool(value)
	if !ok {
		report.InvalidSetting(prefix+key, value)
		return
	}
	*dst = parsed
}
