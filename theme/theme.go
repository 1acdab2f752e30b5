// Package theme provides named colour schemes expressed as markup style tags.
// A theme seeds the default per-level profiles: level badges, timestamps,
// categories and the value styles used when rendering message arguments.
package theme

import "pkt.systems/marklog/level"

// Theme holds a markup style (the text between brackets, for example
// "bold #ff5555") for every role marklog colours. Empty fields render
// unstyled.
type Theme struct {
	Trace    string
	Debug    string
	Info     string
	Warn     string
	Error    string
	Critical string

	Timestamp   string
	Category    string
	Punctuation string
	EventID     string
	Scope       string
	Caller      string

	String string
	Number string
	Bool   string
	Nil    string
	Time   string

	ExceptionType    string
	ExceptionMessage string
	ExceptionFrame   string
	ExceptionPath    string
}

// Level returns the style for lvl.
func (t Theme) Level(lvl level.Level) string {
	switch lvl {
	case level.Trace:
		return t.Trace
	case level.Debug:
		return t.Debug
	case level.Info:
		return t.Info
	case level.Warn:
		return t.Warn
	case level.Error:
		return t.Error
	case level.Critical:
		return t.Critical
	}
	return ""
}

// Wrap encloses text in style tags. text must already be escaped markup.
func Wrap(style, text string) string {
	if style == "" || text == "" {
		return text
	}
	return "[" + style + "]" + text + "[/]"
}

// Merge returns t with every empty field filled from fallback.
func (t Theme) Merge(fallback Theme) Theme {
	m := func(s, fb string) string {
		if s != "" {
			return s
		}
		return fb
	}
	return Theme{
		Trace:            m(t.Trace, fallback.Trace),
		Debug:            m(t.Debug, fallback.Debug),
		Info:             m(t.Info, fallback.Info),
		Warn:             m(t.Warn, fallback.Warn),
		Error:            m(t.Error, fallback.Error),
		Critical:         m(t.Critical, fallback.Critical),
		Timestamp:        m(t.Timestamp, fallback.Timestamp),
		Category:         m(t.Category, fallback.Category),
		Punctuation:      m(t.Punctuation, fallback.Punctuation),
		EventID:          m(t.EventID, fallback.EventID),
		Scope:            m(t.Scope, fallback.Scope),
		Caller:           m(t.Caller, fallback.Caller),
		String:           m(t.String, fallback.String),
		Number:           m(t.Number, fallback.Number),
		Bool:             m(t.Bool, fallback.Bool),
		Nil:              m(t.Nil, fallback.Nil),
		Time:             m(t.Time, fallback.Time),
		ExceptionType:    m(t.ExceptionType, fallback.ExceptionType),
		ExceptionMessage: m(t.ExceptionMessage, fallback.ExceptionMessage),
		ExceptionFrame:   m(t.ExceptionFrame, fallback.ExceptionFrame),
		ExceptionPath:    m(t.ExceptionPath, fallback.ExceptionPath),
	}
}
