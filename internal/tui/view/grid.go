package view

import (
	"fmt"
	"strings"

	"comicshelf/internal/manifest"
	tuitheme "comicshelf/internal/tui/theme"
)

// GridLines renders the archive grid, one tile row per page of columns. Each
// tile carries the entry title (or its positional fallback); the cursor tile
// is highlighted.
func GridLines(entries []manifest.Entry, cursor, width int, th tuitheme.Theme) []string {
	if len(entries) == 0 {
		return []string{th.Notice.Render("No comics yet. Check back later.")}
	}

	cols := gridColumns(width)
	tileWidth := tileWidthFor(width, cols)

	var lines []string
	for row := 0; row < (len(entries)+cols-1)/cols; row++ {
		var tiles []string
		for col := 0; col < cols; col++ {
			i := row*cols + col
			if i >= len(entries) {
				break
			}
			tiles = append(tiles, gridTile(entries[i], i == cursor, tileWidth, th))
		}
		lines = append(lines, strings.Join(tiles, " "))
	}
	return lines
}

func gridTile(entry manifest.Entry, active bool, width int, th tuitheme.Theme) string {
	label := fmt.Sprintf("[%s] %s", Sanitize(entry.ID.String()), DisplayTitle(entry))
	label = padOrTruncate(label, width)
	if active {
		return th.ActiveLine.Render(label)
	}
	return th.ComicTitle.Render(label)
}

func gridColumns(width int) int {
	switch {
	case width >= 120:
		return 3
	case width >= 80:
		return 2
	default:
		return 1
	}
}

func tileWidthFor(width, cols int) int {
	if width <= 0 {
		width = 80
	}
	w := (width - (cols - 1)) / cols
	if w < 16 {
		w = 16
	}
	return w
}

func padOrTruncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
