package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette
var (
	ColorError  = lipgloss.Color("#EF4444") // Red
	ColorCaret  = lipgloss.Color("#F59E0B") // Amber
	ColorMuted  = lipgloss.Color("#6B7280") // Gray
	ColorOK     = lipgloss.Color("#10B981") // Emerald
	ColorAnchor = lipgloss.Color("#06B6D4") // Cyan
)

// Styles is the set of styles a Reporter renders with.
type Styles struct {
	Error  lipgloss.Style
	Gutter lipgloss.Style
	Source lipgloss.Style
	Caret  lipgloss.Style
	OK     lipgloss.Style
	Kind   lipgloss.Style
	Anchor lipgloss.Style
}

// NewStyles builds the styles on a renderer bound to w. With color false
// the renderer uses the ASCII profile and every style renders plain text.
func NewStyles(w io.Writer, color bool) Styles {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return Styles{
		Error: r.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Gutter: r.NewStyle().
			Foreground(ColorMuted),
		Source: r.NewStyle(),
		Caret: r.NewStyle().
			Foreground(ColorCaret).
			Bold(true),
		OK: r.NewStyle().
			Foreground(ColorOK).
			Bold(true),
		Kind: r.NewStyle().
			Bold(true),
		Anchor: r.NewStyle().
			Foreground(ColorAnchor),
	}
}
