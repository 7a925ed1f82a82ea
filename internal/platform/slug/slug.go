package slug

import (
	"regexp"
	"strings"
)

const fallback = "untitled"

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns a label such as "CS101: Algorithms" into "cs101-algorithms".
func Make(input string) string {
	return MakeN(input, 0)
}

// MakeN is Make capped at max bytes, cutting back to the last dash when the
// cap lands inside a word. max <= 0 means no cap.
func MakeN(input string, max int) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if max > 0 && len(s) > max {
		cut := s[:max]
		if s[max] != '-' {
			if i := strings.LastIndex(cut, "-"); i > 0 {
				cut = cut[:i]
			}
		}
		s = strings.Trim(cut, "-")
	}
	if s == "" {
		return fallback
	}
	return s
}
