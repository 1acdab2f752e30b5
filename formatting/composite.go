package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// Composite formats v the way a "{key,width:format}" placeholder asks for.
//
// Formats containing '%' are fmt verbs. Otherwise numbers accept the
// standard specifiers D, N, F, E, X, P and G with an optional precision
// ("N2", "X8") or a digit pattern such as "#,##0.00"; times accept the
// single-letter standard formats, a Go layout, or a day/month/year pattern
// such as "yyyy-MM-dd HH:mm"; durations accept "c" and "g". A format that
// does not apply to the value is ignored.
//
// A positive width right-aligns the text in that many display columns, a
// negative width left-aligns it. Text wider than the field is not cut.
func Composite(v any, width int, hasWidth bool, format string) string {
	text := formatValue(v, format)
	if hasWidth {
		text = Align(text, width)
	}
	return text
}

// Align pads s with spaces to |width| display columns, on the left for a
// positive width and on the right for a negative one.
func Align(s string, width int) string {
	left := width < 0
	if left {
		width = -width
	}
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	if left {
		return s + strings.Repeat(" ", pad)
	}
	return strings.Repeat(" ", pad) + s
}

func formatValue(v any, format string) string {
	if format == "" {
		return Sprint(v)
	}
	if strings.Contains(format, "%") {
		return fmt.Sprintf(format, v)
	}
	switch x := v.(type) {
	case time.Time:
		return formatTime(x, format)
	case time.Duration:
		if s, ok := formatDuration(x, format); ok {
			return s
		}
	default:
		if n, ok := toNumber(v); ok {
			if s, ok := formatNumber(n, format); ok {
				return s
			}
		}
	}
	return Sprint(v)
}
