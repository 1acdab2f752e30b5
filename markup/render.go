package markup

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Renderer turns markup into styled terminal output for one colour profile.
// It is safe for concurrent use.
type Renderer struct {
	lip     *lipgloss.Renderer
	profile termenv.Profile

	mu     sync.RWMutex
	custom map[string]lipgloss.Style
	cache  map[string]lipgloss.Style
}

// NewRenderer returns a renderer that emits sequences for profile. With
// termenv.Ascii all styling is dropped and Render behaves like Strip.
func NewRenderer(profile termenv.Profile) *Renderer {
	lip := lipgloss.NewRenderer(io.Discard)
	lip.SetColorProfile(profile)
	return &Renderer{
		lip:     lip,
		profile: profile,
		custom:  map[string]lipgloss.Style{},
		cache:   map[string]lipgloss.Style{},
	}
}

// Detect returns a renderer using the colour profile termenv detects for w,
// honouring NO_COLOR and CLICOLOR_FORCE.
func Detect(w io.Writer) *Renderer {
	return NewRenderer(termenv.NewOutput(w).EnvColorProfile())
}

// Profile reports the colour profile the renderer targets.
func (r *Renderer) Profile() termenv.Profile {
	return r.profile
}

// AddStyle registers a named style usable as a tag, for example
// AddStyle("path", lipgloss.NewStyle().Underline(true)) enables "[path]".
// Names are case-insensitive.
func (r *Renderer) AddStyle(name string, style lipgloss.Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[strings.ToLower(strings.TrimSpace(name))] = style
	clear(r.cache)
}

// Valid reports whether body (the text between the brackets) is a style this
// renderer understands.
func (r *Renderer) Valid(body string) bool {
	_, ok := r.lookup(body)
	return ok
}

func (r *Renderer) lookup(body string) (lipgloss.Style, bool) {
	r.mu.RLock()
	st, ok := r.cache[body]
	r.mu.RUnlock()
	if ok {
		return st, true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	sp, ok := parseSpec(body, r.custom)
	if !ok {
		return lipgloss.Style{}, false
	}
	st = sp.style(r.lip.NewStyle().TabWidth(lipgloss.NoTabConversion), r.custom)
	r.cache[body] = st
	return st, true
}

// Render converts markup to terminal output.
func (r *Renderer) Render(s string) string {
	if r == nil || r.profile == termenv.Ascii {
		return Strip(s)
	}
	if strings.IndexAny(s, "[]") < 0 {
		return s
	}
	var out strings.Builder
	out.Grow(len(s) + 32)
	var stack []lipgloss.Style
	var run strings.Builder
	emit := func() {
		if run.Len() == 0 {
			return
		}
		text := run.String()
		run.Reset()
		if len(stack) == 0 {
			out.WriteString(text)
			return
		}
		st := stack[len(stack)-1]
		for i := len(stack) - 2; i >= 0; i-- {
			st = st.Inherit(stack[i])
		}
		writeStyled(&out, st, text)
	}
	walk(s, r.Valid, func(ev event) {
		switch ev.kind {
		case eventText:
			run.WriteString(ev.text)
		case eventOpen:
			emit()
			st, _ := r.lookup(ev.text)
			stack = append(stack, st)
		case eventClose:
			emit()
			stack = stack[:len(stack)-1]
		}
	})
	emit()
	return out.String()
}

// writeStyled styles each line on its own so that line breaks stay outside
// the escape sequences and lipgloss does not pad lines to a common width.
func writeStyled(out *strings.Builder, st lipgloss.Style, text string) {
	for {
		line, rest, more := strings.Cut(text, "\n")
		if line != "" {
			out.WriteString(st.Render(line))
		}
		if !more {
			return
		}
		out.WriteByte('\n')
		text = rest
	}
}
