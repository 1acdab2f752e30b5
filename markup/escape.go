// Package markup renders bracket-tag styled text such as
//
//	[bold red]failed[/] after [grey70]3s[/]
//
// to ANSI sequences. "[[" and "]]" are literal brackets. A tag that does not
// parse as a style is kept as literal text, and "[/]" closes the innermost
// open style.
package markup

import "strings"

// Escape doubles every bracket in s so it renders verbatim.
func Escape(s string) string {
	if strings.IndexAny(s, "[]") < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '[' || c == ']' {
			b.WriteByte(c)
		}
		b.WriteByte(c)
	}
	return b.String()
}

// AppendEscape appends the escaped form of s to dst.
func AppendEscape(dst []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '[' || c == ']' {
			dst = append(dst, c)
		}
		dst = append(dst, c)
	}
	return dst
}

// Strip removes all recognised style tags and unescapes brackets, returning
// the plain text that Render would display.
func Strip(s string) string {
	if strings.IndexAny(s, "[]") < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	walk(s, validTag, func(ev event) {
		if ev.kind == eventText {
			b.WriteString(ev.text)
		}
	})
	return b.String()
}
