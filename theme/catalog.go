package theme

import (
	"sort"
	"strings"
)

// Built-in themes.
var (
	Default = Theme{
		Trace:            "grey50",
		Debug:            "grey70",
		Info:             "green",
		Warn:             "yellow",
		Error:            "red",
		Critical:         "bold white on red",
		Timestamp:        "grey85",
		Category:         "grey70",
		Punctuation:      "grey85",
		EventID:          "grey62",
		Scope:            "grey62",
		Caller:           "grey50",
		String:           "aqua",
		Number:           "fuchsia",
		Bool:             "yellow",
		Nil:              "grey50",
		Time:             "teal",
		ExceptionType:    "bold red",
		ExceptionMessage: "white",
		ExceptionFrame:   "grey70",
		ExceptionPath:    "grey50",
	}

	Plain = Theme{}

	TokyoNight = Theme{
		Trace:            "#565f89",
		Debug:            "#7aa2f7",
		Info:             "#9ece6a",
		Warn:             "#e0af68",
		Error:            "#f7768e",
		Critical:         "bold #1a1b26 on #f7768e",
		Timestamp:        "#565f89",
		Category:         "#bb9af7",
		Punctuation:      "#414868",
		EventID:          "#7dcfff",
		Scope:            "#7dcfff",
		Caller:           "#565f89",
		String:           "#9ece6a",
		Number:           "#ff9e64",
		Bool:             "#bb9af7",
		Nil:              "#565f89",
		Time:             "#2ac3de",
		ExceptionType:    "bold #f7768e",
		ExceptionMessage: "#c0caf5",
		ExceptionFrame:   "#a9b1d6",
		ExceptionPath:    "#565f89",
	}

	Nord = Theme{
		Trace:            "#4c566a",
		Debug:            "#81a1c1",
		Info:             "#a3be8c",
		Warn:             "#ebcb8b",
		Error:            "#bf616a",
		Critical:         "bold #2e3440 on #bf616a",
		Timestamp:        "#4c566a",
		Category:         "#b48ead",
		Punctuation:      "#4c566a",
		EventID:          "#88c0d0",
		Scope:            "#8fbcbb",
		Caller:           "#4c566a",
		String:           "#a3be8c",
		Number:           "#b48ead",
		Bool:             "#d08770",
		Nil:              "#4c566a",
		Time:             "#88c0d0",
		ExceptionType:    "bold #bf616a",
		ExceptionMessage: "#eceff4",
		ExceptionFrame:   "#d8dee9",
		ExceptionPath:    "#4c566a",
	}

	Dracula = Theme{
		Trace:            "#6272a4",
		Debug:            "#8be9fd",
		Info:             "#50fa7b",
		Warn:             "#f1fa8c",
		Error:            "#ff5555",
		Critical:         "bold #282a36 on #ff5555",
		Timestamp:        "#6272a4",
		Category:         "#bd93f9",
		Punctuation:      "#6272a4",
		EventID:          "#ff79c6",
		Scope:            "#ff79c6",
		Caller:           "#6272a4",
		String:           "#f1fa8c",
		Number:           "#bd93f9",
		Bool:             "#ffb86c",
		Nil:              "#6272a4",
		Time:             "#8be9fd",
		ExceptionType:    "bold #ff5555",
		ExceptionMessage: "#f8f8f2",
		ExceptionFrame:   "#f8f8f2",
		ExceptionPath:    "#6272a4",
	}

	Gruvbox = Theme{
		Trace:            "#928374",
		Debug:            "#83a598",
		Info:             "#b8bb26",
		Warn:             "#fabd2f",
		Error:            "#fb4934",
		Critical:         "bold #282828 on #fb4934",
		Timestamp:        "#928374",
		Category:         "#d3869b",
		Punctuation:      "#665c54",
		EventID:          "#8ec07c",
		Scope:            "#8ec07c",
		Caller:           "#928374",
		String:           "#b8bb26",
		Number:           "#d3869b",
		Bool:             "#fe8019",
		Nil:              "#928374",
		Time:             "#83a598",
		ExceptionType:    "bold #fb4934",
		ExceptionMessage: "#ebdbb2",
		ExceptionFrame:   "#d5c4a1",
		ExceptionPath:    "#928374",
	}

	SolarizedDark = Theme{
		Trace:            "#586e75",
		Debug:            "#268bd2",
		Info:             "#859900",
		Warn:             "#b58900",
		Error:            "#dc322f",
		Critical:         "bold #fdf6e3 on #dc322f",
		Timestamp:        "#586e75",
		Category:         "#6c71c4",
		Punctuation:      "#586e75",
		EventID:          "#2aa198",
		Scope:            "#2aa198",
		Caller:           "#586e75",
		String:           "#2aa198",
		Number:           "#d33682",
		Bool:             "#cb4b16",
		Nil:              "#586e75",
		Time:             "#268bd2",
		ExceptionType:    "bold #dc322f",
		ExceptionMessage: "#93a1a1",
		ExceptionFrame:   "#839496",
		ExceptionPath:    "#586e75",
	}

	Synthwave84 = Theme{
		Trace:            "#848bbd",
		Debug:            "#36f9f6",
		Info:             "#72f1b8",
		Warn:             "#fede5d",
		Error:            "#fe4450",
		Critical:         "bold #262335 on #fe4450",
		Timestamp:        "#848bbd",
		Category:         "#ff7edb",
		Punctuation:      "#495495",
		EventID:          "#f97e72",
		Scope:            "#f97e72",
		Caller:           "#848bbd",
		String:           "#ff8b39",
		Number:           "#f97e72",
		Bool:             "#fede5d",
		Nil:              "#848bbd",
		Time:             "#36f9f6",
		ExceptionType:    "bold #fe4450",
		ExceptionMessage: "#ffffff",
		ExceptionFrame:   "#b6b1b1",
		ExceptionPath:    "#848bbd",
	}

	CatppuccinMocha = Theme{
		Trace:            "#6c7086",
		Debug:            "#89b4fa",
		Info:             "#a6e3a1",
		Warn:             "#f9e2af",
		Error:            "#f38ba8",
		Critical:         "bold #1e1e2e on #f38ba8",
		Timestamp:        "#6c7086",
		Category:         "#cba6f7",
		Punctuation:      "#585b70",
		EventID:          "#94e2d5",
		Scope:            "#94e2d5",
		Caller:           "#6c7086",
		String:           "#a6e3a1",
		Number:           "#fab387",
		Bool:             "#f5c2e7",
		Nil:              "#6c7086",
		Time:             "#89dceb",
		ExceptionType:    "bold #f38ba8",
		ExceptionMessage: "#cdd6f4",
		ExceptionFrame:   "#bac2de",
		ExceptionPath:    "#6c7086",
	}

	OneDark = Theme{
		Trace:            "#5c6370",
		Debug:            "#61afef",
		Info:             "#98c379",
		Warn:             "#e5c07b",
		Error:            "#e06c75",
		Critical:         "bold #282c34 on #e06c75",
		Timestamp:        "#5c6370",
		Category:         "#c678dd",
		Punctuation:      "#4b5263",
		EventID:          "#56b6c2",
		Scope:            "#56b6c2",
		Caller:           "#5c6370",
		String:           "#98c379",
		Number:           "#d19a66",
		Bool:             "#d19a66",
		Nil:              "#5c6370",
		Time:             "#56b6c2",
		ExceptionType:    "bold #e06c75",
		ExceptionMessage: "#abb2bf",
		ExceptionFrame:   "#abb2bf",
		ExceptionPath:    "#5c6370",
	}
)

var namedThemes = map[string]*Theme{
	"default":          &Default,
	"plain":            &Plain,
	"tokyo-night":      &TokyoNight,
	"nord":             &Nord,
	"dracula":          &Dracula,
	"gruvbox":          &Gruvbox,
	"solarized-dark":   &SolarizedDark,
	"synthwave-84":     &Synthwave84,
	"catppuccin-mocha": &CatppuccinMocha,
	"one-dark":         &OneDark,
}

var themeAliases = map[string]string{
	"none":            "plain",
	"mono":            "plain",
	"monochrome":      "plain",
	"tokyonight":      "tokyo-night",
	"doom-nord":       "nord",
	"doomnord":        "nord",
	"doom-dracula":    "dracula",
	"doomdracula":     "dracula",
	"doom-gruvbox":    "gruvbox",
	"doomgruvbox":     "gruvbox",
	"solarizeddark":   "solarized-dark",
	"solarized":       "solarized-dark",
	"synthwave84":     "synthwave-84",
	"catppuccinmocha": "catppuccin-mocha",
	"catppuccin":      "catppuccin-mocha",
	"onedark":         "one-dark",
}

// Lookup resolves a built-in theme by canonical name or alias. Names are
// case-insensitive; underscores and spaces count as dashes.
func Lookup(name string) (*Theme, bool) {
	normalized := normalizeThemeName(name)
	if canonical, ok := themeAliases[normalized]; ok {
		normalized = canonical
	}
	t, ok := namedThemes[normalized]
	return t, ok
}

// ByName is Lookup falling back to Default for empty or unknown names.
func ByName(name string) *Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return &Default
}

// Names returns the canonical built-in theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(namedThemes))
	for name := range namedThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeThemeName(name string) string {
	s := strings.TrimSpace(strings.ToLower(name))
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")
	if strings.HasPrefix(s, "theme-") {
		s = strings.TrimPrefix(s, "theme-")
	} else if strings.HasPrefix(s, "theme") {
		s = strings.TrimLeft(strings.TrimPrefix(s, "theme"), "-")
	}
	return s
}
