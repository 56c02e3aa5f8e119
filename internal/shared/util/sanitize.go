package util

import (
	"errors"
	"strings"
)

// ErrEmptyFileName indicates the name had no usable characters.
var ErrEmptyFileName = errors.New("empty file name")

// SanitizeFileName reduces a name to storage-key-safe characters.
// Letters, digits, underscore and hyphen pass through; anything else
// becomes an underscore. Runs of underscores collapse to one.
func SanitizeFileName(name string) (string, error) {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
			}
			lastUnderscore = true
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "", ErrEmptyFileName
	}
	return s, nil
}
