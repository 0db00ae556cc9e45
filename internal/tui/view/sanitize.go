package view

import "strings"

// Sanitize neutralizes terminal control sequences in manifest-supplied text.
// Titles and alt text are rendered literally, so a value like "<script>" shows
// up as those characters; only ESC and other C0 controls are stripped, since
// they could corrupt the screen or smuggle escape sequences.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t':
			b.WriteRune(' ')
		case r < 0x20 || r == 0x7f:
			// drop ESC and friends
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
