package util

import (
	"errors"
	"regexp"
	"strings"
)

var (
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	underscoreRuns = regexp.MustCompile(`_+`)
)

const maxFileNameLength = 255

// SanitizeFileName replaces unsafe characters with underscores, collapses
// runs of underscores, and caps the length. Traversal patterns are rejected
// outright.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = unsafeChars.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	if len(s) > maxFileNameLength {
		s = s[:maxFileNameLength]
	}
	if s == "" || s == "_" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
