package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title       lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Section     lipgloss.Style
	ActiveLine  lipgloss.Style
	MetaLabel   lipgloss.Style
	MetaValue   lipgloss.Style
	StateIdle   lipgloss.Style
	StateWarn   lipgloss.Style
	StateLoad   lipgloss.Style

	ComicTitle   lipgloss.Style
	ComicCurrent lipgloss.Style
	AltText      lipgloss.Style
	Notice       lipgloss.Style
	Panel        lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		TabActive:   lipgloss.NewStyle().Bold(true).Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		TabInactive: lipgloss.NewStyle().Foreground(cpOverlay1).Padding(0, 1),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		ActiveLine:  lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:   lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:   lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:   lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:   lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:   lipgloss.NewStyle().Foreground(cpPeach),

		ComicTitle:   lipgloss.NewStyle().Bold(true).Foreground(cpText),
		ComicCurrent: lipgloss.NewStyle().Bold(true).Foreground(cpYellow),
		AltText:      lipgloss.NewStyle().Italic(true).Foreground(cpSubtext0),
		Notice:       lipgloss.NewStyle().Foreground(cpSubtext0),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cpMauve).
			Padding(1, 2),
	}
}

func (t Theme) StyleComicTitle(current bool, title string) string {
	if title == "" {
		return title
	}
	if current {
		return t.ComicCurrent.Render(title)
	}
	return t.ComicTitle.Render(title)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
