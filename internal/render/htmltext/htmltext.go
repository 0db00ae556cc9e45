// Package htmltext converts small HTML fragments, like the manifest's about
// text, into wrapped plain-text lines for the terminal.
package htmltext

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
)

// Lines renders an HTML fragment as wrapped text. Script and style subtrees
// are dropped entirely; everything else collapses to its text content with
// paragraph-level breaks preserved.
func Lines(raw string, width int) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return wrapText(strings.TrimSpace(html.UnescapeString(raw)), width)
	}
	body := findBodyNode(doc)
	if body == nil {
		return wrapText(strings.TrimSpace(html.UnescapeString(raw)), width)
	}

	var b strings.Builder
	collectText(body, &b)
	text := normalizeBlankLines(b.String())
	if text == "" {
		return nil
	}
	return wrapText(text, max(1, width))
}

// Text is Lines joined, for callers that want a single string.
func Text(raw string) string {
	return strings.Join(Lines(raw, 80), "\n")
}

func collectText(node *nethtml.Node, b *strings.Builder) {
	if node == nil {
		return
	}
	switch node.Type {
	case nethtml.TextNode:
		b.WriteString(node.Data)
		return
	case nethtml.ElementNode:
		switch strings.ToLower(node.Data) {
		case "script", "style":
			return
		case "br":
			b.WriteString("\n")
			return
		case "p", "div", "ul", "ol", "h1", "h2", "h3", "h4", "blockquote":
			b.WriteString("\n\n")
		case "li":
			b.WriteString("\n- ")
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, b)
	}
	if node.Type == nethtml.ElementNode {
		switch strings.ToLower(node.Data) {
		case "p", "div", "ul", "ol", "h1", "h2", "h3", "h4", "blockquote":
			b.WriteString("\n\n")
		}
	}
}

func normalizeBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.Join(strings.Fields(line), " ")
		if trimmed == "" {
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			out = append(out, "")
			continue
		}
		out = append(out, trimmed)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func findBodyNode(node *nethtml.Node) *nethtml.Node {
	if node == nil {
		return nil
	}
	if node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, "body") {
		return node
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if found := findBodyNode(child); found != nil {
			return found
		}
	}
	return nil
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		if p == "" {
			out = append(out, "")
			continue
		}
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, word[:width])
				word = word[width:]
			}

			if line == "" {
				line = word
				continue
			}
			if len(line)+1+len(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
