package util

import (
	"strings"
	"testing"
)

func TestContentDigest(t *testing.T) {
	payload := []byte("cv bytes")
	got := ContentDigest(payload)
	if got != ContentDigest(payload) {
		t.Fatalf("expected stable digest, got %s", got)
	}
	if got == ContentDigest([]byte("other bytes")) {
		t.Fatalf("expected different digests for different content")
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("digest contains non-hex character: %c", ch)
		}
	}
	if len(got) != 16 {
		t.Fatalf("expected 16 hex characters, got %d", len(got))
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "resume.pdf", want: "resume.pdf"},
		{name: "slashes replaced", input: "dir/resume.pdf", want: "dir_resume.pdf"},
		{name: "backslashes replaced", input: `dir\resume.pdf`, want: "dir_resume.pdf"},
		{name: "trimmed", input: "  resume.pdf  ", want: "resume.pdf"},
		{name: "traversal rejected", input: "../resume.pdf", wantErr: true},
		{name: "empty rejected", input: "   ", wantErr: true},
		{name: "overlong rejected", input: strings.Repeat("a", 300) + ".pdf", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SanitizeFileName(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
