package platform

import "testing"

func TestValidateImageURL(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid https", "https://example.com/comics/001.png", false},
		{"valid http", "http://example.com/x.png", false},
		{"trims whitespace", "  https://example.com/x.png  ", false},
		{"empty", "", true},
		{"file scheme", "file:///etc/passwd", true},
		{"missing host", "https:///x.png", true},
		{"javascript scheme", "javascript:alert(1)", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateImageURL(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got == "" {
				t.Fatal("expected validated URL")
			}
		})
	}
}
