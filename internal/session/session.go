// Package session owns the reader cursor over the sorted comic collection.
package session

import (
	"comicshelf/internal/manifest"
	"comicshelf/internal/order"
)

// Session tracks the reader position within the sorted collection. A nil or
// empty collection never opens; cursor moves only report true when the
// displayed entry actually changed.
type Session struct {
	entries []manifest.Entry
	cursor  int
	open    bool
}

// New copies and sorts the entries into archive order.
func New(entries []manifest.Entry) *Session {
	sorted := append([]manifest.Entry(nil), entries...)
	order.Sort(sorted)
	return &Session{entries: sorted}
}

func (s *Session) Len() int {
	return len(s.entries)
}

// Entries returns the collection in sorted order. Callers must not mutate it.
func (s *Session) Entries() []manifest.Entry {
	return s.entries
}

func (s *Session) IsOpen() bool {
	return s.open
}

func (s *Session) Cursor() int {
	return s.cursor
}

// OpenByID opens the reader at the entry whose id matches exactly. Duplicate
// ids resolve to the first match in sorted order; unknown ids are ignored.
func (s *Session) OpenByID(id string) bool {
	for i, entry := range s.entries {
		if entry.ID.String() == id {
			s.cursor = i
			s.open = true
			return true
		}
	}
	return false
}

// OpenAt opens the reader at a collection index, clamped into range.
func (s *Session) OpenAt(index int) bool {
	if len(s.entries) == 0 {
		return false
	}
	s.cursor = clamp(index, len(s.entries))
	s.open = true
	return true
}

func (s *Session) OpenFirst() bool {
	return s.OpenAt(0)
}

func (s *Session) OpenLatest() bool {
	return s.OpenAt(len(s.entries) - 1)
}

func (s *Session) Close() {
	s.open = false
}

func (s *Session) CanPrev() bool {
	return s.open && s.cursor > 0
}

func (s *Session) CanNext() bool {
	return s.open && s.cursor < len(s.entries)-1
}

// CanLatest is false only for an empty collection.
func (s *Session) CanLatest() bool {
	return len(s.entries) > 0
}

func (s *Session) Prev() bool {
	if !s.CanPrev() {
		return false
	}
	s.cursor--
	return true
}

func (s *Session) Next() bool {
	if !s.CanNext() {
		return false
	}
	s.cursor++
	return true
}

func (s *Session) JumpToFirst() bool {
	if !s.open || len(s.entries) == 0 {
		return false
	}
	moved := s.cursor != 0
	s.cursor = 0
	return moved
}

func (s *Session) JumpToLatest() bool {
	if !s.open || len(s.entries) == 0 {
		return false
	}
	last := len(s.entries) - 1
	moved := s.cursor != last
	s.cursor = last
	return moved
}

// Current returns the entry under the cursor while the reader is open.
func (s *Session) Current() (manifest.Entry, bool) {
	if !s.open || len(s.entries) == 0 {
		return manifest.Entry{}, false
	}
	return s.entries[s.cursor], true
}

// Latest returns the last entry in sort order.
func (s *Session) Latest() (manifest.Entry, bool) {
	if len(s.entries) == 0 {
		return manifest.Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// NeighborImages lists the image paths of the entries adjacent to the
// cursor, for eager fetching after a successful move.
func (s *Session) NeighborImages() []string {
	if !s.open || len(s.entries) == 0 {
		return nil
	}
	out := make([]string, 0, 2)
	if s.cursor > 0 {
		out = append(out, s.entries[s.cursor-1].Image)
	}
	if s.cursor < len(s.entries)-1 {
		out = append(out, s.entries[s.cursor+1].Image)
	}
	return out
}

func clamp(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}
