package http1

import "strings"

// Method is one of the request verbs this decoder accepts.
type Method uint8

const (
	MethodGet Method = iota + 1
	MethodPost
	MethodPut
	MethodDelete
)

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	case MethodDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// ParseMethod matches s case-insensitively. Surrounding whitespace is not
// trimmed: "get " is rejected.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "get":
		return MethodGet, nil
	case "post":
		return MethodPost, nil
	case "put":
		return MethodPut, nil
	case "delete":
		return MethodDelete, nil
	}
	return 0, newError(KindInvalidMethod, "unknown method", s)
}
