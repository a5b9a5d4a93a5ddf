package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

var (
	keywordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#ECFD65"})

	paragraphStyle = lipgloss.NewStyle().
			Margin(1, 2, 0, 2)
)

func init() {
	lipgloss.SetColorProfile(termenv.ColorProfile())
}

// keyword renders a highlighted term for help text.
func keyword(s string) string {
	return keywordStyle.Render(s)
}

// paragraph wraps and indents help text the way the rest of the CLI output
// is formatted.
func paragraph(s string) string {
	return paragraphStyle.Render(indent.String(wordwrap.String(s, 78), 0))
}
