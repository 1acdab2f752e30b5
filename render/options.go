package render

import "pkt.systems/marklog/level"

// Renderer options are stored per profile with ConfigureOptions and read
// with OptionsFor. Their zero values are usable defaults.

// TimestampOptions configures {Timestamp}, {DateTime} and {Time}.
type TimestampOptions struct {
	// Format applies when the placeholder has none. Empty means
	// "yyyy-MM-dd HH:mm:ss". See formatting.Composite for the syntax.
	Format string
	UTC    bool
	// Style overrides the formatting table's style for times.
	Style string
}

// DefaultLevelNames are the four-letter level badges.
var DefaultLevelNames = map[level.Level]string{
	level.Trace:    "Trce",
	level.Debug:    "Dbug",
	level.Info:     "Info",
	level.Warn:     "Warn",
	level.Error:    "Fail",
	level.Critical: "Crit",
}

// LevelOptions configures {Level} and {LogLevel}. A format of "u" or "l"
// changes the case of the name and "full" prints the long level name.
type LevelOptions struct {
	// Names replaces DefaultLevelNames for the levels it lists.
	Names map[level.Level]string
	Style string
}

// Name returns the display name of lvl.
func (o LevelOptions) Name(lvl level.Level) string {
	if name, ok := o.Names[lvl]; ok {
		return name
	}
	if name, ok := DefaultLevelNames[lvl]; ok {
		return name
	}
	return lvl.String()
}

// CategoryOptions configures {Category}. ShortName, or a "short" format,
// prints only the part after the last '.' or '/'.
type CategoryOptions struct {
	ShortName bool
	Style     string
}

// EventIDOptions configures {EventId}.
type EventIDOptions struct {
	Style string
}

// ExceptionOptions configures {Exception}.
type ExceptionOptions struct {
	HideType       bool
	HideStackTrace bool
	// MaxStackFrames caps the printed frames; zero means 32.
	MaxStackFrames int
	// FullPaths prints complete source paths instead of base names.
	FullPaths       bool
	HideLineNumbers bool
	// MaxDepth caps how many wrapped errors are followed; zero means 8.
	MaxDepth int
	// Indent is the frame indentation in columns; zero means 3.
	Indent int

	TypeStyle    string
	MessageStyle string
	FrameStyle   string
	PathStyle    string
}

// ScopesOptions configures {Scopes}.
type ScopesOptions struct {
	// Separator goes between scopes; empty means " => ".
	Separator string
	KeyStyle  string
	// Style colours separators and the '=' of key/value items.
	Style string
}

// CallerOptions configures {Caller}. The format "file" prints base file
// and line, "full" the complete path and line; otherwise the function name
// is printed.
type CallerOptions struct {
	Style string
}

// ActivityOptions configures {ActivityId}.
type ActivityOptions struct {
	Style string
}
