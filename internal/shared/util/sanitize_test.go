package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "XYZ123", "XYZ123"},
		{"keeps hyphen and underscore", "AB-12_34", "AB-12_34"},
		{"replaces separators", "a/b\\c d", "a_b_c_d"},
		{"collapses runs", "a///b", "a_b"},
		{"trims edge underscores", "/abc/", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SanitizeFileName(tc.in)
			if err != nil {
				t.Fatalf("SanitizeFileName(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeFileNameEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "///", "..."} {
		if _, err := SanitizeFileName(in); err == nil {
			t.Fatalf("SanitizeFileName(%q): expected error", in)
		}
	}
}
