package render

import (
	"pkt.systems/marklog/formatting"
	"pkt.systems/marklog/markup"
	"pkt.systems/marklog/template"
)

// Renderer appends the markup for one template segment.
type Renderer interface {
	Render(b *Buffer, e *Event) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(b *Buffer, e *Event) error

func (f RendererFunc) Render(b *Buffer, e *Event) error { return f(b, e) }

// CallerRenderer is implemented by renderers that read Event.CallerPC.
type CallerRenderer interface {
	NeedsCaller() bool
}

type staticRenderer struct {
	markup string
}

// Static returns a renderer that writes s as markup.
func Static(s string) Renderer {
	return staticRenderer{markup: s}
}

func (r staticRenderer) Render(b *Buffer, _ *Event) error {
	b.WriteMarkup(r.markup)
	return nil
}

type passthroughRenderer struct {
	escaped string
}

// Passthrough returns a renderer that writes the placeholder's source text
// verbatim, braces included.
func Passthrough(seg template.Segment) Renderer {
	return passthroughRenderer{escaped: markup.Escape(seg.Source)}
}

func (r passthroughRenderer) Render(b *Buffer, _ *Event) error {
	b.WriteMarkup(r.escaped)
	return nil
}

// WriteValue formats v through the profile's formatting table, honouring
// the segment's width and format, and appends the styled markup.
func WriteValue(b *Buffer, p *Profile, seg template.Segment, v any) {
	b.WriteMarkup(p.table().Markup(v, seg.Width, seg.HasWidth, seg.Format))
}

// writeStyledValue formats v like WriteValue but styles it with style when
// set instead of the table's style.
func writeStyledValue(b *Buffer, p *Profile, seg template.Segment, v any, style string) {
	if style == "" {
		WriteValue(b, p, seg, v)
		return
	}
	text := p.table().Text(v, seg.Width, seg.HasWidth, seg.Format)
	b.WriteMarkup(formatting.Wrap(style, markup.Escape(text)))
}
