package httpx

import "dqx0.com/go/fedora/httpx/internal/http1"

// Method is a supported request verb.
type Method = http1.Method

const (
	MethodGet    = http1.MethodGet
	MethodPost   = http1.MethodPost
	MethodPut    = http1.MethodPut
	MethodDelete = http1.MethodDelete
)

// ParseMethod parses GET, POST, PUT or DELETE in any letter case.
func ParseMethod(s string) (Method, error) {
	return http1.ParseMethod(s)
}
