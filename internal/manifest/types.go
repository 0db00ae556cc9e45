package manifest

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Entry is one archived comic as described by the manifest. The id is
// opaque: producers emit strings ("001", "halloween-special") or bare
// numbers, and both are coerced to a string identity key.
type Entry struct {
	ID    FlexID `json:"id"`
	Title string `json:"title,omitempty"`
	Date  string `json:"date,omitempty"`
	Image string `json:"image"`
	Alt   string `json:"alt,omitempty"`
}

// Manifest is the top-level archive document.
type Manifest struct {
	Title  string  `json:"title,omitempty"`
	Author string  `json:"author,omitempty"`
	About  string  `json:"about,omitempty"`
	Comics []Entry `json:"comics"`
}

// FlexID accepts a JSON string or number and normalizes it to a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexID(n.String())
		return nil
	}
	return fmt.Errorf("entry id must be a string or number, got %s", string(data))
}

func (f FlexID) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(f))), nil
}

func (f FlexID) String() string {
	return string(f)
}
