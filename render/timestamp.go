package render

import (
	"time"

	"pkt.systems/marklog/formatting"
	"pkt.systems/marklog/markup"
	"pkt.systems/marklog/template"
)

const defaultTimestampFormat = time.DateTime

type timestampRenderer struct {
	seg   template.Segment
	cache secondCache
}

func (r *timestampRenderer) Render(b *Buffer, e *Event) error {
	opts := OptionsFor[TimestampOptions](e.Profile)
	t := e.Time
	if t.IsZero() {
		t = time.Now()
	}
	if opts.UTC {
		t = t.UTC()
	}
	format := r.seg.Format
	if format == "" {
		format = opts.Format
	}
	if format == "" {
		format = defaultTimestampFormat
	}
	text := r.cache.format(t, format)
	if r.seg.HasWidth {
		text = formatting.Align(text, r.seg.Width)
	}
	style := opts.Style
	if style == "" {
		style = e.Profile.table().Style(t)
	}
	b.WriteMarkup(formatting.Wrap(style, markup.Escape(text)))
	return nil
}
