package render

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"pkt.systems/marklog/formatting"
	"pkt.systems/marklog/markup"
	"pkt.systems/marklog/scope"
	"pkt.systems/marklog/template"
)

var (
	marginSetPattern    = regexp.MustCompile(`(?i)^Margin=(\d+)$`)
	marginAdjustPattern = regexp.MustCompile(`(?i)^Margin([+-]\d+)$`)
	scopeValuePattern   = regexp.MustCompile(`(?i)^Scope\.(.+)$`)
)

// Builtins returns the built-in renderer descriptors in match order.
func Builtins() []Descriptor {
	return []Descriptor{
		{
			Name:    "Message",
			Pattern: KeyPattern("Message", "Msg"),
			Factory: func(template.Segment) (Renderer, error) { return messageRenderer{}, nil },
		},
		{
			Name:    "Exception",
			Pattern: KeyPattern("Exception", "Error", "Err"),
			Factory: func(template.Segment) (Renderer, error) { return exceptionRenderer{}, nil },
		},
		{
			Name:              "Timestamp",
			Pattern:           KeyPattern("Timestamp", "DateTime", "Time"),
			SupportsAlignment: true,
			SupportsFormat:    true,
			Factory: func(seg template.Segment) (Renderer, error) {
				return &timestampRenderer{seg: seg}, nil
			},
		},
		{
			Name:              "Level",
			Pattern:           KeyPattern("Level", "LogLevel"),
			SupportsAlignment: true,
			SupportsFormat:    true,
			Factory:           func(seg template.Segment) (Renderer, error) { return levelRenderer{seg: seg}, nil },
		},
		{
			Name:              "Category",
			Pattern:           KeyPattern("Category", "CategoryName", "Logger"),
			SupportsAlignment: true,
			SupportsFormat:    true,
			Factory:           func(seg template.Segment) (Renderer, error) { return categoryRenderer{seg: seg}, nil },
		},
		{
			Name:              "EventId",
			Pattern:           KeyPattern("EventId", "Event"),
			SupportsAlignment: true,
			SupportsFormat:    true,
			Factory:           func(seg template.Segment) (Renderer, error) { return eventIDRenderer{seg: seg}, nil },
		},
		{
			Name:    "NewLine",
			Pattern: KeyPattern("NewLine", "NL"),
			Factory: func(template.Segment) (Renderer, error) { return newLineRenderer{}, nil },
		},
		{
			Name:    "MarginSet",
			Pattern: marginSetPattern,
			Factory: func(seg template.Segment) (Renderer, error) {
				n, err := strconv.Atoi(marginSetPattern.FindStringSubmatch(seg.Key)[1])
				if err != nil {
					return nil, err
				}
				return marginSetRenderer{n: n}, nil
			},
		},
		{
			Name:    "MarginAdjust",
			Pattern: marginAdjustPattern,
			Factory: func(seg template.Segment) (Renderer, error) {
				n, err := strconv.Atoi(marginAdjustPattern.FindStringSubmatch(seg.Key)[1])
				if err != nil {
					return nil, err
				}
				return marginAdjustRenderer{delta: n}, nil
			},
		},
		{
			Name:    "Scopes",
			Pattern: KeyPattern("Scopes", "Scope"),
			Factory: func(template.Segment) (Renderer, error) { return scopesRenderer{}, nil },
		},
		{
			Name:              "ScopeValue",
			Pattern:           scopeValuePattern,
			SupportsAlignment: true,
			SupportsFormat:    true,
			Factory: func(seg template.Segment) (Renderer, error) {
				return scopeValueRenderer{seg: seg, key: scopeValuePattern.FindStringSubmatch(seg.Key)[1]}, nil
			},
		},
		{
			Name:              "Caller",
			Pattern:           KeyPattern("Caller", "Func"),
			SupportsAlignment: true,
			SupportsFormat:    true,
			Factory:           func(seg template.Segment) (Renderer, error) { return callerRenderer{seg: seg}, nil },
		},
		{
			Name:              "ActivityId",
			Pattern:           KeyPattern("ActivityId", "TraceId", "Activity"),
			SupportsAlignment: true,
			Factory:           func(seg template.Segment) (Renderer, error) { return activityRenderer{seg: seg}, nil },
		},
		{
			Name:              "ProcessId",
			Pattern:           KeyPattern("ProcessId", "Pid"),
			SupportsAlignment: true,
			SupportsFormat:    true,
			Factory:           func(seg template.Segment) (Renderer, error) { return processRenderer{seg: seg}, nil },
		},
	}
}

type newLineRenderer struct{}

func (newLineRenderer) Render(b *Buffer, _ *Event) error {
	b.WriteNewLine()
	return nil
}

type marginSetRenderer struct{ n int }

func (r marginSetRenderer) Render(b *Buffer, _ *Event) error {
	b.Margin().Set(r.n)
	return nil
}

type marginAdjustRenderer struct{ delta int }

func (r marginAdjustRenderer) Render(b *Buffer, _ *Event) error {
	b.Margin().Adjust(r.delta)
	return nil
}

type levelRenderer struct{ seg template.Segment }

func (r levelRenderer) Render(b *Buffer, e *Event) error {
	opts := OptionsFor[LevelOptions](e.Profile)
	name := opts.Name(e.Level)
	switch strings.ToLower(r.seg.Format) {
	case "u":
		name = strings.ToUpper(name)
	case "l":
		name = strings.ToLower(name)
	case "full":
		name = e.Level.String()
	}
	writeAligned(b, r.seg, opts.Style, name)
	return nil
}

type categoryRenderer struct{ seg template.Segment }

func (r categoryRenderer) Render(b *Buffer, e *Event) error {
	opts := OptionsFor[CategoryOptions](e.Profile)
	name := e.Category
	if opts.ShortName || strings.EqualFold(r.seg.Format, "short") {
		name = ShortCategory(name)
	}
	writeAligned(b, r.seg, opts.Style, name)
	return nil
}

// ShortCategory returns the last '.' or '/' separated part of category.
func ShortCategory(category string) string {
	if i := strings.LastIndexAny(category, "./"); i >= 0 && i+1 < len(category) {
		return category[i+1:]
	}
	return category
}

type eventIDRenderer struct{ seg template.Segment }

func (r eventIDRenderer) Render(b *Buffer, e *Event) error {
	if e.EventID.IsZero() {
		return nil
	}
	opts := OptionsFor[EventIDOptions](e.Profile)
	if e.EventID.Name == "" {
		writeStyledValue(b, e.Profile, r.seg, e.EventID.ID, opts.Style)
		return nil
	}
	writeAligned(b, r.seg, opts.Style, e.EventID.Name)
	return nil
}

type scopesRenderer struct{}

func (scopesRenderer) Render(b *Buffer, e *Event) error {
	if len(e.Scopes) == 0 {
		return nil
	}
	opts := OptionsFor[ScopesOptions](e.Profile)
	sep := opts.Separator
	if sep == "" {
		sep = " => "
	}
	var none template.Segment
	for i, v := range e.Scopes {
		if i > 0 {
			b.WriteStyled(opts.Style, sep)
		}
		pairs, ok := scope.AsPairs(v)
		if !ok {
			WriteValue(b, e.Profile, none, v)
			continue
		}
		for j, p := range pairs {
			if j > 0 {
				b.WriteMarkup(" ")
			}
			b.WriteStyled(opts.KeyStyle, p.Key)
			b.WriteStyled(opts.Style, "=")
			WriteValue(b, e.Profile, none, p.Value)
		}
	}
	return nil
}

type scopeValueRenderer struct {
	seg template.Segment
	key string
}

func (r scopeValueRenderer) Render(b *Buffer, e *Event) error {
	for _, v := range e.Scopes {
		pairs, ok := scope.AsPairs(v)
		if !ok {
			continue
		}
		if found, ok := pairs.Get(r.key); ok {
			WriteValue(b, e.Profile, r.seg, found)
			return nil
		}
	}
	return nil
}

type activityRenderer struct{ seg template.Segment }

func (r activityRenderer) Render(b *Buffer, e *Event) error {
	if e.Activity == "" {
		return nil
	}
	opts := OptionsFor[ActivityOptions](e.Profile)
	writeAligned(b, r.seg, opts.Style, e.Activity)
	return nil
}

var pid = os.Getpid()

type processRenderer struct{ seg template.Segment }

func (r processRenderer) Render(b *Buffer, e *Event) error {
	WriteValue(b, e.Profile, r.seg, pid)
	return nil
}

func writeAligned(b *Buffer, seg template.Segment, style, text string) {
	if seg.HasWidth {
		text = formatting.Align(text, seg.Width)
	}
	b.WriteMarkup(formatting.Wrap(style, markup.Escape(text)))
}
