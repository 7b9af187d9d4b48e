package http1

import "strings"

// SplitTarget splits a request target on its first '?'. An empty path
// becomes "/".
func SplitTarget(target string) (path, rawQuery string) {
	path, rawQuery, _ = strings.Cut(target, "?")
	if path == "" {
		path = "/"
	}
	return path, rawQuery
}

// ParseQuery decodes "k=v&k2=v2". Pairs without '=' are dropped, later
// duplicates win, and nothing is percent-decoded. The result is never nil.
func ParseQuery(raw string) map[string]string {
	q := make(map[string]string)
	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		q[k] = v
	}
	return q
}
