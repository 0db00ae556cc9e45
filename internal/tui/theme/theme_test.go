package theme

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestStyleComicTitle(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	current := th.StyleComicTitle(true, "Comic 7")
	if !strings.Contains(current, "\x1b[") {
		t.Fatalf("expected styled current title, got %q", current)
	}

	other := th.StyleComicTitle(false, "Comic 8")
	if !strings.Contains(other, "\x1b[") {
		t.Fatalf("expected styled title, got %q", other)
	}

	if got := th.StyleComicTitle(true, ""); got != "" {
		t.Fatalf("empty title must stay empty, got %q", got)
	}
}

func TestRenderActiveLine(t *testing.T) {
	lipgloss.SetColorProfile(termenv.ANSI)
	th := Default()

	if got := th.RenderActiveLine(false, "plain"); got != "plain" {
		t.Fatalf("inactive line must pass through, got %q", got)
	}
	if got := th.RenderActiveLine(true, "active"); !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected styled active line, got %q", got)
	}
}
