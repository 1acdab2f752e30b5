package render

import (
	"encoding/json"
	"strconv"

	"pkt.systems/marklog/formatting"
	"pkt.systems/marklog/markup"
	"pkt.systems/marklog/template"
)

// messageRenderer expands the event's message template. Named placeholders
// take arguments in order of appearance; a numeric key ("{0}") selects an
// argument by index. "{@x}" prints the argument as JSON and "{$x}" forces
// its string form. Placeholders without a matching argument print as
// written. Literal text is escaped unless the profile preserves markup.
type messageRenderer struct{}

func (messageRenderer) Render(b *Buffer, e *Event) error {
	if e.Message == "" {
		return nil
	}
	preserve := e.Profile != nil && e.Profile.PreserveMarkupInFormatStrings
	next := 0
	// Uncached: only output templates go through ParseCached.
	template.Split(e.Message, func(seg template.Segment) {
		if !seg.Placeholder {
			if preserve {
				b.WriteMarkup(seg.Text())
			} else {
				b.WriteText(seg.Text())
			}
			return
		}
		v, ok := messageArg(seg, e.Args, &next)
		if !ok {
			b.WriteText(seg.Source)
			return
		}
		writeMessageArg(b, e.Profile, seg, v)
	})
	return nil
}

func messageArg(seg template.Segment, args []any, next *int) (any, bool) {
	name := seg.Name()
	if idx, err := strconv.Atoi(name); err == nil {
		if idx < 0 || idx >= len(args) {
			return nil, false
		}
		return args[idx], true
	}
	if *next >= len(args) {
		return nil, false
	}
	v := args[*next]
	*next++
	return v, true
}

func writeMessageArg(b *Buffer, p *Profile, seg template.Segment, v any) {
	switch seg.Sigil() {
	case template.SigilDestructure:
		text := destructure(v)
		if seg.HasWidth {
			text = formatting.Align(text, seg.Width)
		}
		b.WriteMarkup(formatting.Wrap(p.table().Style(v), markup.Escape(text)))
	case template.SigilStringify:
		WriteValue(b, p, seg, formatting.Sprint(v))
	default:
		WriteValue(b, p, seg, v)
	}
}

func destructure(v any) string {
	data, err := json.Marshal(formatting.Unwrap(v))
	if err != nil {
		return formatting.Sprint(v)
	}
	return string(data)
}
