package formatting

import (
	"strconv"
	"strings"
	"time"
)

var standardTimeLayouts = map[string]string{
	"d": "01/02/2006",
	"D": "Monday, 02 January 2006",
	"t": "15:04",
	"T": "15:04:05",
	"f": "Monday, 02 January 2006 15:04",
	"F": "Monday, 02 January 2006 15:04:05",
	"g": "01/02/2006 15:04",
	"G": "01/02/2006 15:04:05",
	"o": "2006-01-02T15:04:05.0000000Z07:00",
	"O": "2006-01-02T15:04:05.0000000Z07:00",
	"s": "2006-01-02T15:04:05",
	"u": "2006-01-02 15:04:05Z",
	"M": "January 02",
	"m": "January 02",
	"Y": "January 2006",
	"y": "January 2006",
}

func formatTime(t time.Time, format string) string {
	switch format {
	case "r", "R":
		return t.UTC().Format(time.RFC1123)
	case "u":
		return t.UTC().Format(standardTimeLayouts["u"])
	case "U":
		return t.UTC().Format(standardTimeLayouts["F"])
	}
	if layout, ok := standardTimeLayouts[format]; ok {
		return t.Format(layout)
	}
	return t.Format(TimeLayout(format))
}

// TimeLayout converts a day/month/year pattern ("yyyy-MM-dd HH:mm:ss.fff")
// to a Go layout. A format that contains a digit is taken to be a Go layout
// already and returned unchanged. Text in single or double quotes is copied
// literally.
func TimeLayout(format string) string {
	if strings.ContainsAny(format, "0123456789") {
		return format
	}
	var b strings.Builder
	b.Grow(len(format) + 8)
	for i := 0; i < len(format); {
		c := format[i]
		n := 1
		for i+n < len(format) && format[i+n] == c {
			n++
		}
		switch c {
		case '\'', '"':
			end := strings.IndexByte(format[i+1:], c)
			if end < 0 {
				b.WriteString(format[i+1:])
				return b.String()
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		case '\\':
			if i+1 < len(format) {
				b.WriteByte(format[i+1])
			}
			i += 2
			continue
		case 'y':
			if n <= 2 {
				b.WriteString("06")
			} else {
				b.WriteString("2006")
			}
		case 'M':
			switch n {
			case 1:
				b.WriteString("1")
			case 2:
				b.WriteString("01")
			case 3:
				b.WriteString("Jan")
			default:
				b.WriteString("January")
			}
		case 'd':
			switch n {
			case 1:
				b.WriteString("2")
			case 2:
				b.WriteString("02")
			case 3:
				b.WriteString("Mon")
			default:
				b.WriteString("Monday")
			}
		case 'H':
			b.WriteString("15")
		case 'h':
			if n == 1 {
				b.WriteString("3")
			} else {
				b.WriteString("03")
			}
		case 'm':
			if n == 1 {
				b.WriteString("4")
			} else {
				b.WriteString("04")
			}
		case 's':
			if n == 1 {
				b.WriteString("5")
			} else {
				b.WriteString("05")
			}
		case 'f':
			b.WriteString(strings.Repeat("0", n))
		case 'F':
			b.WriteString(strings.Repeat("9", n))
		case 't':
			b.WriteString("PM")
		case 'z':
			switch n {
			case 1, 2:
				b.WriteString("-07")
			default:
				b.WriteString("-07:00")
			}
		case 'K':
			b.WriteString("Z07:00")
		default:
			b.WriteString(format[i : i+n])
		}
		i += n
	}
	return b.String()
}

// formatDuration supports "c" ([-][d.]hh:mm:ss[.fffffff]) and "g"
// ([-][d:]h:mm:ss[.fffffff]).
func formatDuration(d time.Duration, format string) (string, bool) {
	if format != "c" && format != "g" && format != "G" {
		return "", false
	}
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	ticks := d / 100

	general := format != "c"
	if days > 0 || format == "G" {
		b.WriteString(strconv.FormatInt(int64(days), 10))
		if general {
			b.WriteByte(':')
		} else {
			b.WriteByte('.')
		}
	}
	if general && days == 0 && format == "g" {
		b.WriteString(strconv.FormatInt(int64(hours), 10))
	} else {
		write2(&b, int64(hours))
	}
	b.WriteByte(':')
	write2(&b, int64(minutes))
	b.WriteByte(':')
	write2(&b, int64(seconds))
	if ticks > 0 || format == "G" {
		frac := strconv.FormatInt(int64(ticks), 10)
		b.WriteByte('.')
		b.WriteString(strings.Repeat("0", 7-len(frac)))
		if format == "g" {
			frac = strings.TrimRight(frac, "0")
		}
		b.WriteString(frac)
	}
	return b.String(), true
}

func write2(b *strings.Builder, v int64) {
	if v < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(v, 10))
}
