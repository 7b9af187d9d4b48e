package http1

import "strings"

// ParseHeaders builds a header map from raw "Key: value" lines.
//
// Keys are kept exactly as sent, case included. Values lose leading
// whitespace only. Lines without a colon are skipped, the last occurrence of
// a key wins, and parsing stops at the first empty line.
func ParseHeaders(lines []string) map[string]string {
	h := make(map[string]string, len(lines))
	for _, line := range lines {
		if line == "" {
			break
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		h[k] = strings.TrimLeft(v, " \t")
	}
	return h
}

// LookupFold finds key ignoring ASCII case. When several keys differ only in
// case, the lexically smallest one is used so the result does not depend on
// map iteration order.
func LookupFold(h map[string]string, key string) (string, bool) {
	if v, ok := h[key]; ok {
		return v, true
	}
	var (
		found string
		val   string
		ok    bool
	)
	for k, v := range h {
		if !strings.EqualFold(k, key) {
			continue
		}
		if !ok || k < found {
			found, val, ok = k, v, true
		}
	}
	return val, ok
}

// valuesFold returns every distinct value stored under a key that matches
// key ignoring case.
func valuesFold(h map[string]string, key string) []string {
	var vv []string
	for k, v := range h {
		if !strings.EqualFold(k, key) {
			continue
		}
		dup := false
		for _, seen := range vv {
			if seen == v {
				dup = true
				break
			}
		}
		if !dup {
			vv = append(vv, v)
		}
	}
	return vv
}
