package formatting

import (
	"maps"
	"reflect"
	"strings"

	"pkt.systems/marklog/markup"
)

// Formatter produces the display text of a value. The text is escaped before
// it reaches the markup layer.
type Formatter func(v any) string

type valueKey struct {
	tag   Tag
	value any
}

// Table holds the formatters and styles of one level profile. It is built
// during setup and read-only afterwards; a nil *Table formats with Sprint
// and applies no style.
type Table struct {
	formatters   map[Tag]Formatter
	valueStyles  map[valueKey]string
	typeStyles   map[Tag]string
	defaultStyle string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		formatters:  map[Tag]Formatter{},
		valueStyles: map[valueKey]string{},
		typeStyles:  map[Tag]string{},
	}
}

// AddTypeFormatter registers f for values tagged tag.
func (t *Table) AddTypeFormatter(tag Tag, f Formatter) *Table {
	if f == nil {
		delete(t.formatters, tag)
		return t
	}
	t.formatters[tag] = f
	return t
}

// SetDefaultFormatter registers the formatter used when no tag-specific one
// exists. It is the formatter for TagAny.
func (t *Table) SetDefaultFormatter(f Formatter) *Table {
	return t.AddTypeFormatter(TagAny, f)
}

// AddValueStyle styles one specific value, for example true or a sentinel
// string. Values that are not comparable cannot be keyed and are ignored.
func (t *Table) AddValueStyle(v any, style string) *Table {
	raw := Unwrap(v)
	if !isComparable(raw) {
		return t
	}
	t.valueStyles[valueKey{tag: Of(v), value: raw}] = style
	return t
}

// AddTypeStyle styles every value tagged tag.
func (t *Table) AddTypeStyle(tag Tag, style string) *Table {
	t.typeStyles[tag] = style
	return t
}

// AddTypeStyles styles every listed tag alike.
func (t *Table) AddTypeStyles(tags []Tag, style string) *Table {
	for _, tag := range tags {
		t.typeStyles[tag] = style
	}
	return t
}

// SetDefaultStyle sets the style used when neither a value nor a type style
// matches.
func (t *Table) SetDefaultStyle(style string) *Table {
	t.defaultStyle = style
	return t
}

// Clone returns an independent copy.
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}
	return &Table{
		formatters:   maps.Clone(t.formatters),
		valueStyles:  maps.Clone(t.valueStyles),
		typeStyles:   maps.Clone(t.typeStyles),
		defaultStyle: t.defaultStyle,
	}
}

// Text returns the unescaped display text of v. A width or format always
// goes through Composite and bypasses registered formatters.
func (t *Table) Text(v any, width int, hasWidth bool, format string) string {
	if hasWidth || format != "" {
		return Composite(Unwrap(v), width, hasWidth, format)
	}
	tag := Of(v)
	if t != nil {
		if f, ok := t.formatters[tag]; ok {
			return f(v)
		}
	}
	if tag == TagNil {
		return ""
	}
	if t != nil {
		if f, ok := t.formatters[TagAny]; ok {
			return f(v)
		}
	}
	return Sprint(v)
}

// Style returns the style for v: a value style, then a type style, then
// the default style.
func (t *Table) Style(v any) string {
	if t == nil {
		return ""
	}
	tag := Of(v)
	if len(t.valueStyles) > 0 {
		raw := Unwrap(v)
		if isComparable(raw) {
			if style, ok := t.valueStyles[valueKey{tag: tag, value: raw}]; ok {
				return style
			}
		}
	}
	if style, ok := t.typeStyles[tag]; ok {
		return style
	}
	return t.defaultStyle
}

// Markup returns v formatted, escaped and wrapped in its style.
func (t *Table) Markup(v any, width int, hasWidth bool, format string) string {
	text := t.Text(v, width, hasWidth, format)
	return Wrap(t.Style(v), markup.Escape(text))
}

// Wrap encloses already escaped markup in style tags.
func Wrap(style, escaped string) string {
	if style == "" || escaped == "" {
		return escaped
	}
	var b strings.Builder
	b.Grow(len(style) + len(escaped) + 5)
	b.WriteByte('[')
	b.WriteString(style)
	b.WriteByte(']')
	b.WriteString(escaped)
	b.WriteString("[/]")
	return b.String()
}

func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}
