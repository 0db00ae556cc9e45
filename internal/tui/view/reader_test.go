package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"comicshelf/internal/manifest"
	tuitheme "comicshelf/internal/tui/theme"
)

func TestDisplayTitle_FallsBackToComicID(t *testing.T) {
	if got := DisplayTitle(manifest.Entry{ID: "7"}); got != "Comic 7" {
		t.Fatalf("expected positional fallback, got %q", got)
	}
	if got := DisplayTitle(manifest.Entry{ID: "7", Title: "The Heist"}); got != "The Heist" {
		t.Fatalf("expected manifest title, got %q", got)
	}
}

func TestDisplayTitle_KeepsMarkupLiteral(t *testing.T) {
	got := DisplayTitle(manifest.Entry{ID: "1", Title: "<b>bold</b>"})
	if got != "<b>bold</b>" {
		t.Fatalf("title markup must render literally, got %q", got)
	}
}

func TestMetaLine_DateOptional(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	th := tuitheme.Default()

	withDate := MetaLine(manifest.Entry{ID: "001", Date: "2024-01-05"}, th)
	if !strings.Contains(withDate, "2024-01-05") || !strings.Contains(withDate, "001") {
		t.Fatalf("expected date and id, got %q", withDate)
	}

	noDate := MetaLine(manifest.Entry{ID: "001"}, th)
	if strings.Contains(noDate, "date") {
		t.Fatalf("date label must be omitted when absent, got %q", noDate)
	}
	if !strings.Contains(noDate, "001") {
		t.Fatalf("id must always be shown, got %q", noDate)
	}
}

func TestReaderLines_Content(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	th := tuitheme.Default()

	entry := manifest.Entry{ID: "003", Title: "Third", Image: "comics/3.png", Alt: "hover joke"}
	lines := ReaderLines(entry, 3, 10, "", "", th)
	joined := strings.Join(lines, "\n")

	if !strings.Contains(joined, "Comic 3 of 10") {
		t.Fatalf("expected position header, got %q", joined)
	}
	if !strings.Contains(joined, "Third") {
		t.Fatalf("expected title, got %q", joined)
	}
	if !strings.Contains(joined, "loading image") {
		t.Fatalf("expected loading placeholder, got %q", joined)
	}
	if !strings.Contains(joined, "hover joke") {
		t.Fatalf("expected alt text, got %q", joined)
	}

	withPreview := strings.Join(ReaderLines(entry, 3, 10, "ART", "", th), "\n")
	if !strings.Contains(withPreview, "ART") {
		t.Fatalf("expected rendered preview, got %q", withPreview)
	}
	withErr := strings.Join(ReaderLines(entry, 3, 10, "", "boom", th), "\n")
	if !strings.Contains(withErr, "image unavailable") {
		t.Fatalf("expected preview error notice, got %q", withErr)
	}
}
