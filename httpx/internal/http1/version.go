package http1

import "strings"

const versionPrefix = "HTTP/1."

// ParseVersion returns the minor version of an "HTTP/1.x" token. Only the
// last character is read, so "HTTP/1.10" yields 0.
func ParseVersion(s string) (uint8, error) {
	if !strings.HasPrefix(s, versionPrefix) || len(s) == len(versionPrefix) {
		return 0, newError(KindInvalidVersion, "bad version", s)
	}
	c := s[len(s)-1]
	if c < '0' || c > '9' {
		return 0, newError(KindInvalidVersion, "bad version", s)
	}
	return c - '0', nil
}
