package markup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeRoundTripsThroughStrip(t *testing.T) {
	for _, s := range []string{
		"",
		"plain",
		"[bold]not a tag[/]",
		"a[[b]]c",
		"]]][[[",
		"array[0] = x",
	} {
		assert.Equal(t, s, Strip(Escape(s)), "input %q", s)
		assert.Equal(t, Escape(s), string(AppendEscape(nil, s)))
	}
}

func TestStripRemovesTags(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"[bold]x[/]", "x"},
		{"[red on blue]a[/] b", "a b"},
		{"[grey85][[[/]12:00[grey85]]][/] Info", "[12:00] Info"},
		{"[#ff8800]hex[/]", "hex"},
		{"[rgb(10,20,30)]rgb[/]", "rgb"},
		{"[unknownstyle]x[/]", "[unknownstyle]x[/]"},
		{"[/]", "[/]"},
		{"unterminated [bold", "unterminated [bold"},
		{"[bold italic underline]x[/bold]", "x"},
		{"[208]x[/]", "x"},
		{"[256]x[/]", "[256]x[/]"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Strip(tc.in), "input %q", tc.in)
	}
}

func TestParseColor(t *testing.T) {
	c, ok := parseColor("red")
	require.True(t, ok)
	assert.Equal(t, "9", c)

	c, ok = parseColor("#FF0000")
	require.True(t, ok)
	assert.Equal(t, "#ff0000", c)

	c, ok = parseColor("grey100")
	require.True(t, ok)
	assert.Equal(t, "#ffffff", c)

	_, ok = parseColor("#GG0000")
	assert.False(t, ok)
	_, ok = parseColor("grey101")
	assert.False(t, ok)
	_, ok = parseColor("rgb(1,2)")
	assert.False(t, ok)
}

func TestParseSpecRejectsConflicts(t *testing.T) {
	_, ok := parseSpec("red blue", nil)
	assert.False(t, ok)
	_, ok = parseSpec("red on", nil)
	assert.False(t, ok)
	sp, ok := parseSpec("bold red on white", nil)
	require.True(t, ok)
	assert.True(t, sp.bold)
	assert.Equal(t, "9", sp.fg)
	assert.Equal(t, "15", sp.bg)
}

func TestAsciiRendererStrips(t *testing.T) {
	r := NewRenderer(termenv.Ascii)
	assert.Equal(t, "[x] done", r.Render("[[x]] [green]done[/]"))
}

func TestANSIRendererStyles(t *testing.T) {
	r := NewRenderer(termenv.ANSI256)
	out := r.Render("[bold]hi[/] there")
	assert.Contains(t, out, "\x1b[")
	assert.True(t, strings.HasSuffix(out, " there"))
	assert.Equal(t, "hi there", stripANSI(out))
}

func TestRendererKeepsNewlinesOutsideSequences(t *testing.T) {
	r := NewRenderer(termenv.TrueColor)
	out := r.Render("[red]a\nbb[/]\n")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "a", stripANSI(lines[0]))
	assert.Equal(t, "bb", stripANSI(lines[1]))
	assert.Empty(t, lines[2])
}

func TestRendererCustomStyle(t *testing.T) {
	r := NewRenderer(termenv.ANSI)
	assert.False(t, r.Valid("path"))
	r.AddStyle("Path", lipgloss.NewStyle().Underline(true))
	assert.True(t, r.Valid("path"))
	assert.True(t, r.Valid("path bold"))
	out := r.Render("[path]/tmp[/]")
	assert.NotEqual(t, "/tmp", out)
	assert.Equal(t, "/tmp", stripANSI(out))
}

func TestNilRendererStrips(t *testing.T) {
	var r *Renderer
	assert.Equal(t, "x", r.Render("[bold]x[/]"))
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
