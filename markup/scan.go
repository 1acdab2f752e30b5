package markup

import "strings"

type eventKind uint8

const (
	eventText eventKind = iota
	eventOpen
	eventClose
)

type event struct {
	kind eventKind
	text string
}

// walk tokenises s. accept decides whether a tag body opens a style. A
// closer with no open style is treated as text.
func walk(s string, accept func(string) bool, fn func(event)) {
	depth := 0
	textStart := 0
	flush := func(end int) {
		if end > textStart {
			fn(event{kind: eventText, text: s[textStart:end]})
		}
	}
	for i := 0; i < len(s); {
		c := s[i]
		switch c {
		case '[':
			if i+1 < len(s) && s[i+1] == '[' {
				flush(i + 1)
				i += 2
				textStart = i
				continue
			}
			end := strings.IndexByte(s[i+1:], ']')
			if end < 0 {
				i++
				continue
			}
			body := s[i+1 : i+1+end]
			next := i + 2 + end
			if strings.HasPrefix(body, "/") {
				if depth > 0 {
					depth--
					flush(i)
					fn(event{kind: eventClose})
					i = next
					textStart = i
					continue
				}
				i++
				continue
			}
			if body != "" && !strings.Contains(body, "[") && accept(body) {
				depth++
				flush(i)
				fn(event{kind: eventOpen, text: body})
				i = next
				textStart = i
				continue
			}
			i++
		case ']':
			if i+1 < len(s) && s[i+1] == ']' {
				flush(i + 1)
				i += 2
				textStart = i
				continue
			}
			i++
		default:
			i++
		}
	}
	flush(len(s))
}
