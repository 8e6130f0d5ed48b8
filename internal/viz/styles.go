package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466")).
			MarginBottom(1)

	PageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)
)

// cssColors maps the CSS colour names the presets and scripts use.
var cssColors = map[string]string{
	"red":         "#ff0000",
	"orange":      "#ffa500",
	"yellow":      "#ffff00",
	"yellowgreen": "#9acd32",
	"green":       "#008000",
	"lime":        "#00ff00",
	"teal":        "#008080",
	"cyan":        "#00ffff",
	"blue":        "#0000ff",
	"navy":        "#000080",
	"purple":      "#800080",
	"magenta":     "#ff00ff",
	"pink":        "#ffc0cb",
	"brown":       "#a52a2a",
	"gray":        "#808080",
	"grey":        "#808080",
	"silver":      "#c0c0c0",
	"white":       "#ffffff",
}

// Color converts a CSS colour to a terminal colour. Black and the empty
// string adapt to the terminal background so text stays readable.
func Color(css string) lipgloss.TerminalColor {
	css = strings.ToLower(strings.TrimSpace(css))
	switch {
	case css == "" || css == "black":
		return lipgloss.AdaptiveColor{Light: "#000000", Dark: "#d0d0d0"}
	case strings.HasPrefix(css, "#") && (len(css) == 7 || len(css) == 4):
		return lipgloss.Color(css)
	}
	if hex, ok := cssColors[css]; ok {
		return lipgloss.Color(hex)
	}
	return lipgloss.NoColor{}
}

// Spinner returns one frame of the status spinner.
func Spinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// Separator draws a rule of the given width.
func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
