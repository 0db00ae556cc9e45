// Package order derives the stable ascending archive order from the
// free-form entry identifiers in the manifest.
package order

import (
	"sort"
	"strings"

	"comicshelf/internal/manifest"
)

// NumericKey extracts the first contiguous digit run from id. ok is false
// when the id contains no digits.
func NumericKey(id string) (key string, ok bool) {
	start := -1
	for i, r := range id {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return id[start:i], true
		}
	}
	if start >= 0 {
		return id[start:], true
	}
	return "", false
}

// Compare is the total order over entry ids: numeric comparison of the
// extracted digit runs when both ids have one (ties broken by natural
// comparison of the full ids), ids with digits before ids without, and
// natural comparison of the raw ids otherwise.
func Compare(a, b string) int {
	ka, oka := NumericKey(a)
	kb, okb := NumericKey(b)

	switch {
	case oka && okb:
		if c := compareDigits(ka, kb); c != 0 {
			return c
		}
		return naturalCompare(a, b)
	case oka:
		return -1
	case okb:
		return 1
	default:
		return naturalCompare(a, b)
	}
}

// Sort orders entries ascending in place. The sort is stable so duplicate
// ids keep their manifest order and lookup stays first-match-wins.
func Sort(entries []manifest.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return Compare(entries[i].ID.String(), entries[j].ID.String()) < 0
	})
}

// compareDigits compares two digit runs numerically without parsing, so
// arbitrarily long identifiers cannot overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// naturalCompare is a numeric-aware lexicographic comparison: digit runs
// inside the strings compare as numbers, everything else byte-wise.
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		da, ra := leadingDigits(a)
		db, rb := leadingDigits(b)

		if da != "" && db != "" {
			if c := compareDigits(da, db); c != 0 {
				return c
			}
			// Equal values with different padding: shorter run first.
			if len(da) != len(db) {
				if len(da) < len(db) {
					return -1
				}
				return 1
			}
			a, b = ra, rb
			continue
		}

		if a[0] != b[0] {
			if a[0] < b[0] {
				return -1
			}
			return 1
		}
		a, b = a[1:], b[1:]
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

func leadingDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}
