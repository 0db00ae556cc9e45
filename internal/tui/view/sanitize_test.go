package view

import "testing"

func TestSanitize_RendersMarkupLiterally(t *testing.T) {
	got := Sanitize("<script>alert('x')</script>")
	if got != "<script>alert('x')</script>" {
		t.Fatalf("markup must survive as literal text, got %q", got)
	}
}

func TestSanitize_StripsControlSequences(t *testing.T) {
	got := Sanitize("title\x1b[31mred\x07bell")
	if got != "title[31mredbell" {
		t.Fatalf("control characters must be dropped, got %q", got)
	}
}

func TestSanitize_CollapsesWhitespace(t *testing.T) {
	got := Sanitize("  a \t b\nc  ")
	if got != "a b c" {
		t.Fatalf("unexpected whitespace handling: %q", got)
	}
}
