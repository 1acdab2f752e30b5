// Package level defines marklog severities and the category override
// resolver that decides the effective minimum level for a logger.
package level

import (
	"os"
	"strings"

	"pkt.systems/marklog/errors"
)

// Level defines log levels.
type Level int8

const (
	// Trace defines trace log level.
	Trace Level = iota
	// Debug defines debug log level.
	Debug
	// Info defines info log level.
	Info
	// Warn defines warn log level.
	Warn
	// Error defines error log level.
	Error
	// Critical defines critical log level.
	Critical
	// None disables output. Events at None are never emitted.
	None
)

// All lists the emitting levels in ascending order.
var All = []Level{Trace, Debug, Info, Warn, Error, Critical}

// Parse converts a textual level into a Level value. It accepts values
// such as "trace", "debug", "info", "information", "warn", "warning",
// "error", "fail", "critical", "crit", "fatal", "none", "off" and "disabled"
// (case insensitive).
func Parse(value string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace", "trce", "verbose":
		return Trace, true
	case "debug", "dbug":
		return Debug, true
	case "info", "information":
		return Info, true
	case "warn", "warning":
		return Warn, true
	case "error", "fail":
		return Error, true
	case "critical", "crit", "fatal", "panic":
		return Critical, true
	case "none", "off", "disabled", "disable":
		return None, true
	default:
		return Info, false
	}
}

// String returns the canonical lower-case name of l.
func (l Level) String() string {
	switch l {
	case Trace:
		return "trace"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	case Critical:
		return "critical"
	case None:
		return "none"
	default:
		return "info"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return errors.Newf(errors.ErrInvalidLevel, "unknown level %q", string(text))
	}
	*l = parsed
	return nil
}

// FromEnv looks up key in the environment and parses it into a Level.
func FromEnv(key string) (Level, bool) {
	if key == "" {
		return Info, false
	}
	value, ok := os.LookupEnv(key)
	if !ok {
		return Info, false
	}
	return Parse(value)
}

// Enabled reports whether an event at event passes the effective minimum.
func Enabled(event, effective Level) bool {
	return event != None && event >= effective
}
