package markdown

import "strings"

// ReplaceManagedBlock swaps the text between the markers for generated and
// leaves everything else in body alone. Without a complete marker pair the
// block is appended.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	block := startMarker + "\n" + generated + "\n" + endMarker
	if start := strings.Index(body, startMarker); start >= 0 {
		if end := strings.Index(body[start:], endMarker); end >= 0 {
			end += start + len(endMarker)
			return body[:start] + block + body[end:]
		}
	}

	switch {
	case strings.TrimSpace(body) == "":
		return block + "\n"
	case strings.HasSuffix(body, "\n"):
		return body + "\n" + block + "\n"
	default:
		return body + "\n\n" + block + "\n"
	}
}
