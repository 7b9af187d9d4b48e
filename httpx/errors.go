package httpx

import (
	"errors"

	"dqx0.com/go/fedora/httpx/internal/http1"
)

// Error is the decode error type. Match kinds with errors.Is against the
// sentinels below.
type Error = http1.Error

var (
	ErrInvalidMethod        = http1.ErrInvalidMethod
	ErrMalformedRequestLine = http1.ErrMalformedRequestLine
	ErrInvalidVersion       = http1.ErrInvalidVersion
	ErrAmbiguousFraming     = http1.ErrAmbiguousFraming
	ErrUnsupportedEncoding  = http1.ErrUnsupportedEncoding
	ErrNotImplemented       = http1.ErrNotImplemented
	ErrInvalidContentLength = http1.ErrInvalidContentLength
	ErrTruncatedBody        = http1.ErrTruncatedBody
	ErrUTF8                 = http1.ErrUTF8
	ErrIO                   = http1.ErrIO
	ErrHeaderTooLarge       = http1.ErrHeaderTooLarge
	ErrBodyTooLarge         = http1.ErrBodyTooLarge
)

var (
	ErrServerClosed    = errors.New("httpx: server closed")
	ErrResponseWritten = errors.New("httpx: response already written")
)

// StatusFor maps a decode error to the status code a server should answer
// with. Transport failures return 0: there is nobody left to answer.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return 200
	case errors.Is(err, ErrIO):
		return 0
	case errors.Is(err, ErrNotImplemented):
		return 501
	case errors.Is(err, ErrBodyTooLarge):
		return 413
	case errors.Is(err, ErrHeaderTooLarge):
		return 431
	default:
		return 400
	}
}
