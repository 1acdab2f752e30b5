package template

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Split walks text and reports each segment to fn in source order. The
// reported segments cover text with no gaps and no overlaps.
func Split(text string, fn func(Segment)) {
	if fn == nil {
		return
	}
	litStart := 0
	for i := 0; i < len(text); {
		if text[i] != '{' {
			i++
			continue
		}
		if i+1 < len(text) && text[i+1] == '{' {
			i += 2
			continue
		}
		seg, end, ok := scanPlaceholder(text, i)
		if !ok {
			i++
			continue
		}
		if i > litStart {
			fn(literalSegment(text, litStart, i))
		}
		fn(seg)
		i = end
		litStart = end
	}
	if litStart < len(text) {
		fn(literalSegment(text, litStart, len(text)))
	}
}

// Parse returns the segments of text. Empty text yields no segments.
func Parse(text string) []Segment {
	var out []Segment
	Split(text, func(s Segment) {
		out = append(out, s)
	})
	return out
}

var (
	parseCache sync.Map
	cacheSize  atomic.Int64
)

// ParseCached is Parse memoised by the exact template string for the life of
// the process. The returned slice is shared and must not be modified. Use it
// for configured templates only; text that varies per event belongs in Parse
// or Split.
func ParseCached(text string) []Segment {
	if cached, ok := parseCache.Load(text); ok {
		return cached.([]Segment)
	}
	segments := Parse(text)
	actual, loaded := parseCache.LoadOrStore(text, segments)
	if !loaded {
		cacheSize.Add(1)
	}
	return actual.([]Segment)
}

// CachedTemplates reports how many distinct templates ParseCached holds.
func CachedTemplates() int {
	return int(cacheSize.Load())
}

func literalSegment(text string, start, end int) Segment {
	return Segment{
		Literal: text[start:end],
		Offset:  start,
		Length:  end - start,
		Source:  text[start:end],
	}
}

// scanPlaceholder tries to read a placeholder starting at the '{' at start.
// It returns the segment and the index just past the closing brace.
func scanPlaceholder(text string, start int) (Segment, int, bool) {
	i := start + 1
	keyStart := i
	for i < len(text) {
		c := text[i]
		if c == ',' || c == ':' || c == '}' || c == '{' {
			break
		}
		i++
	}
	if i >= len(text) || text[i] == '{' {
		return Segment{}, 0, false
	}
	key := strings.TrimSpace(text[keyStart:i])
	if key == "" {
		return Segment{}, 0, false
	}
	seg := Segment{Placeholder: true, Key: key}

	if text[i] == ',' {
		i++
		widthStart := i
		for i < len(text) && text[i] != ':' && text[i] != '}' && text[i] != '{' {
			i++
		}
		if i >= len(text) || text[i] == '{' {
			return Segment{}, 0, false
		}
		width, err := strconv.Atoi(strings.TrimSpace(text[widthStart:i]))
		if err != nil {
			return Segment{}, 0, false
		}
		seg.Width = width
		seg.HasWidth = true
	}

	if text[i] == ':' {
		i++
		formatStart := i
		for i < len(text) && text[i] != '}' && text[i] != '{' {
			i++
		}
		if i >= len(text) || text[i] == '{' {
			return Segment{}, 0, false
		}
		seg.Format = text[formatStart:i]
	}

	// text[i] is the closing brace.
	end := i + 1
	seg.Offset = start
	seg.Length = end - start
	seg.Source = text[start:end]
	return seg, end, true
}
