package render

import (
	"sync"
	"sync/atomic"
	"time"

	"pkt.systems/marklog/formatting"
)

var (
	cacheableFormats sync.Map
	nonCacheFormats  sync.Map
)

func init() {
	for _, format := range []string{
		"T", "t", "d", "D", "f", "F", "g", "G", "s", "u", "r", "R",
		time.DateTime,
		time.DateOnly,
		time.TimeOnly,
		time.RFC3339,
		time.RFC1123,
		time.Kitchen,
		time.Stamp,
	} {
		cacheableFormats.Store(format, struct{}{})
	}
	for _, format := range []string{
		"o", "O",
		time.RFC3339Nano,
		time.StampMilli,
		time.StampMicro,
		time.StampNano,
	} {
		nonCacheFormats.Store(format, struct{}{})
	}
}

type cachedSecond struct {
	unix   int64
	offset int
	format string
	text   string
}

// secondCache remembers the last formatted second for one placeholder, so
// bursts of events within the same second format the timestamp once.
type secondCache struct {
	last atomic.Pointer[cachedSecond]
}

func (c *secondCache) format(t time.Time, format string) string {
	if !isCacheableFormat(format) {
		return formatting.Composite(t, 0, false, format)
	}
	unix := t.Unix()
	_, offset := t.Zone()
	if e := c.last.Load(); e != nil && e.unix == unix && e.offset == offset && e.format == format {
		return e.text
	}
	text := formatting.Composite(t, 0, false, format)
	c.last.Store(&cachedSecond{unix: unix, offset: offset, format: format, text: text})
	return text
}

func isCacheableFormat(format string) bool {
	if _, ok := cacheableFormats.Load(format); ok {
		return true
	}
	if _, ok := nonCacheFormats.Load(format); ok {
		return false
	}
	if hasSubSecondPrecision(format) {
		nonCacheFormats.Store(format, struct{}{})
		return false
	}
	cacheableFormats.Store(format, struct{}{})
	return true
}

func hasSubSecondPrecision(format string) bool {
	base := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.UTC)
	// If formatting changes within the same second, the format depends on sub-second precision.
	return formatting.Composite(base, 0, false, format) != formatting.Composite(base.Add(time.Millisecond), 0, false, format)
}
