package markup

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// spec is the parsed form of a tag body.
type spec struct {
	fg, bg        string
	bold, dim     bool
	italic, under bool
	strike, rev   bool
	blink         bool
	named         []string
}

var namedColors = map[string]string{
	"black":   "0",
	"maroon":  "1",
	"green":   "2",
	"olive":   "3",
	"navy":    "4",
	"purple":  "5",
	"teal":    "6",
	"silver":  "7",
	"grey":    "8",
	"gray":    "8",
	"red":     "9",
	"lime":    "10",
	"yellow":  "11",
	"blue":    "12",
	"fuchsia": "13",
	"magenta": "13",
	"aqua":    "14",
	"cyan":    "14",
	"white":   "15",
	"orange":  "#FF8700",
}

// validTag reports whether body parses without custom styles. Strip uses it
// so plain output matches what a renderer without extra styles would show.
func validTag(body string) bool {
	_, ok := parseSpec(body, nil)
	return ok
}

func parseSpec(body string, custom map[string]lipgloss.Style) (spec, bool) {
	var sp spec
	fields := strings.Fields(strings.ToLower(body))
	if len(fields) == 0 {
		return sp, false
	}
	background := false
	for _, f := range fields {
		if f == "on" {
			if background {
				return sp, false
			}
			background = true
			continue
		}
		if _, ok := custom[f]; ok && !background {
			sp.named = append(sp.named, f)
			continue
		}
		if !background {
			switch f {
			case "bold", "b":
				sp.bold = true
				continue
			case "dim", "faint":
				sp.dim = true
				continue
			case "italic", "i":
				sp.italic = true
				continue
			case "underline", "u":
				sp.under = true
				continue
			case "strikethrough", "strike", "s":
				sp.strike = true
				continue
			case "invert", "reverse":
				sp.rev = true
				continue
			case "blink", "slowblink", "rapidblink":
				sp.blink = true
				continue
			}
		}
		color, ok := parseColor(f)
		if !ok {
			return sp, false
		}
		if background {
			if sp.bg != "" {
				return sp, false
			}
			sp.bg = color
		} else {
			if sp.fg != "" {
				return sp, false
			}
			sp.fg = color
		}
	}
	if background && sp.bg == "" {
		return sp, false
	}
	return sp, true
}

// parseColor returns a lipgloss colour string. "default" yields "" which
// leaves the colour unset.
func parseColor(s string) (string, bool) {
	if s == "default" {
		return "", true
	}
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return "", false
		}
		return c.Hex(), true
	}
	if rest, ok := strings.CutPrefix(s, "rgb("); ok {
		rest, ok = strings.CutSuffix(rest, ")")
		if !ok {
			return "", false
		}
		parts := strings.Split(rest, ",")
		if len(parts) != 3 {
			return "", false
		}
		var rgb [3]float64
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return "", false
			}
			rgb[i] = float64(n) / 255
		}
		return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}.Hex(), true
	}
	for _, prefix := range []string{"grey", "gray"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok && rest != "" {
			n, err := strconv.Atoi(rest)
			if err != nil || n < 0 || n > 100 {
				return "", false
			}
			v := float64(n) / 100
			return colorful.Color{R: v, G: v, B: v}.Hex(), true
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return "", false
		}
		return strconv.Itoa(n), true
	}
	return "", false
}

func (sp spec) style(base lipgloss.Style, custom map[string]lipgloss.Style) lipgloss.Style {
	st := base
	if sp.fg != "" {
		st = st.Foreground(lipgloss.Color(sp.fg))
	}
	if sp.bg != "" {
		st = st.Background(lipgloss.Color(sp.bg))
	}
	if sp.bold {
		st = st.Bold(true)
	}
	if sp.dim {
		st = st.Faint(true)
	}
	if sp.italic {
		st = st.Italic(true)
	}
	if sp.under {
		st = st.Underline(true)
	}
	if sp.strike {
		st = st.Strikethrough(true)
	}
	if sp.rev {
		st = st.Reverse(true)
	}
	if sp.blink {
		st = st.Blink(true)
	}
	for _, name := range sp.named {
		st = st.Inherit(custom[name])
	}
	return st
}
