package view

import (
	"strings"

	tuitheme "comicshelf/internal/tui/theme"
)

// DisclaimerPanel renders the blocking content notice. There is no dismiss
// hint other than accepting: escape and clicking away are not offered.
func DisclaimerPanel(text string, width int, th tuitheme.Theme) string {
	if width < 40 {
		width = 40
	}
	body := []string{
		th.Title.Render("Content notice"),
		"",
		wrap(text, width-8),
		"",
		th.Section.Render("Press enter to accept and continue. q quits."),
	}
	return th.Panel.Width(width - 4).Render(strings.Join(body, "\n"))
}

func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				b.WriteByte('\n')
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
