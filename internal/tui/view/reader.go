package view

import (
	"fmt"
	"strings"

	"comicshelf/internal/manifest"
	tuitheme "comicshelf/internal/tui/theme"
)

// DisplayTitle is what the reader shows for an entry: its own title, or a
// positional "Comic <id>" placeholder when the manifest left the title out.
func DisplayTitle(entry manifest.Entry) string {
	title := Sanitize(entry.Title)
	if title != "" {
		return title
	}
	return fmt.Sprintf("Comic %s", Sanitize(entry.ID.String()))
}

// MetaLine joins the available metadata: date when present, always the id.
func MetaLine(entry manifest.Entry, th tuitheme.Theme) string {
	parts := make([]string, 0, 2)
	if date := Sanitize(entry.Date); date != "" {
		parts = append(parts, th.MetaLabel.Render("date")+" "+th.MetaValue.Render(date))
	}
	parts = append(parts, th.MetaLabel.Render("id")+" "+th.MetaValue.Render(Sanitize(entry.ID.String())))
	return strings.Join(parts, " • ")
}

// ReaderLines renders the reader pane for the current entry: position header,
// title, metadata, the image preview (or a placeholder) and alt text.
func ReaderLines(entry manifest.Entry, position, total int, preview, previewErr string, th tuitheme.Theme) []string {
	lines := []string{
		th.Section.Render(fmt.Sprintf("Comic %d of %d", position, total)),
		th.ComicCurrent.Render(DisplayTitle(entry)),
		MetaLine(entry, th),
		"",
	}
	switch {
	case preview != "":
		lines = append(lines, preview)
	case previewErr != "":
		lines = append(lines, th.Notice.Render("[image unavailable: "+previewErr+"]"))
	default:
		lines = append(lines, th.Notice.Render("[loading image "+Sanitize(entry.Image)+"]"))
	}
	if alt := Sanitize(entry.Alt); alt != "" {
		lines = append(lines, "", th.AltText.Render(alt))
	}
	return lines
}
