package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles are the lipgloss styles used in text mode.
type Styles struct {
	Header  lipgloss.Style
	Sub     lipgloss.Style
	Key     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Code    lipgloss.Style
}

// newStyles builds styles bound to w. Without a terminal the color profile
// is forced to ASCII so no escape codes are written.
func newStyles(w io.Writer, isTTY bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if !isTTY {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3498db")),
		Sub:     r.NewStyle().Bold(true),
		Key:     r.NewStyle().Foreground(lipgloss.Color("#8e44ad")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#27ae60")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#f39c12")),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#e74c3c")),
		Muted:   r.NewStyle().Faint(true),
		Code:    r.NewStyle().Foreground(lipgloss.Color("#1abc9c")),
	}
}

// Swatch renders a colored square for a CSS hex color.
func (s *Styles) Swatch(color string) string {
	return s.Sub.Foreground(lipgloss.Color(color)).Render("■")
}
