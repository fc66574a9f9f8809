package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	MovedStyle = lipgloss.NewStyle().
			Foreground(MovedColor).
			Bold(true)

	FailedStyle = lipgloss.NewStyle().
			Foreground(FailedColor).
			Bold(true)

	UnmatchedStyle = lipgloss.NewStyle().
			Foreground(UnmatchedColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	CountStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)
)

// Init selects the color profile. With noColor every style renders plain
// text.
func Init(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}
