// Package deeplink encodes the open entry id as a location-fragment style
// string, `c=<urlencoded-id>`, used for resume state and the --open flag.
package deeplink

import (
	"net/url"
	"strings"
)

const fragmentKey = "c"

// Encode builds the fragment for an entry id.
func Encode(id string) string {
	return fragmentKey + "=" + url.QueryEscape(id)
}

// Decode extracts the entry id from a fragment. A leading "#" is tolerated
// so raw location fragments paste cleanly. ok is false when the fragment
// does not carry an id.
func Decode(fragment string) (id string, ok bool) {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	if fragment == "" {
		return "", false
	}
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return "", false
	}
	id = values.Get(fragmentKey)
	if id == "" {
		return "", false
	}
	return id, true
}
