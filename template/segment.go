// Package template splits marklog output and message templates into literal
// and placeholder segments.
//
// The placeholder grammar is
//
//	"{" KEY ["," WIDTH] [":" FORMAT] "}"
//
// where "{{" and "}}" are literal braces. Anything that does not parse as a
// placeholder is kept as literal text; parsing never fails.
package template

import (
	"strconv"
	"strings"
)

// Sigils recognised as key prefixes.
const (
	SigilDestructure = '@'
	SigilStringify   = '$'
)

// Segment is one slice of a template: either literal text or a placeholder.
// Segments are immutable once returned by the parser.
type Segment struct {
	Placeholder bool
	// Key is the placeholder key including any sigil. Empty for literals.
	Key string
	// Literal is the raw literal text, doubled braces included. Empty for
	// placeholders.
	Literal string
	// Width is the signed field width. Only valid when HasWidth is set.
	Width    int
	HasWidth bool
	Format   string
	Offset   int
	Length   int
	// Source is the original text covered by the segment.
	Source string
}

// Sigil returns the operator prefix of the key, or 0.
func (s Segment) Sigil() byte {
	if !s.Placeholder || s.Key == "" {
		return 0
	}
	switch s.Key[0] {
	case SigilDestructure, SigilStringify:
		return s.Key[0]
	}
	return 0
}

// Name returns the key without its sigil.
func (s Segment) Name() string {
	if s.Sigil() != 0 {
		return s.Key[1:]
	}
	return s.Key
}

// Text returns the literal text with doubled braces collapsed. For
// placeholders it returns the source text unchanged.
func (s Segment) Text() string {
	if s.Placeholder {
		return s.Source
	}
	if !strings.Contains(s.Literal, "{{") && !strings.Contains(s.Literal, "}}") {
		return s.Literal
	}
	var b strings.Builder
	b.Grow(len(s.Literal))
	for i := 0; i < len(s.Literal); i++ {
		c := s.Literal[i]
		b.WriteByte(c)
		if (c == '{' || c == '}') && i+1 < len(s.Literal) && s.Literal[i+1] == c {
			i++
		}
	}
	return b.String()
}

// String renders a debug description of the segment.
func (s Segment) String() string {
	if !s.Placeholder {
		return "literal(" + strconv.Quote(s.Literal) + ")"
	}
	var b strings.Builder
	b.WriteString("placeholder(")
	b.WriteString(s.Key)
	if s.HasWidth {
		b.WriteString(" width=")
		b.WriteString(strconv.Itoa(s.Width))
	}
	if s.Format != "" {
		b.WriteString(" format=")
		b.WriteString(strconv.Quote(s.Format))
	}
	b.WriteByte(')')
	return b.String()
}
