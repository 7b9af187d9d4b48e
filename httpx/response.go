package httpx

import (
	"io"
	"strconv"

	"dqx0.com/go/fedora/httpx/internal/http1"
)

// Response is built by a handler and consumed by WriteTo. Headers go out in
// the order they were first set. Nothing is added or validated: callers
// set Content-Length themselves when the peer needs it.
type Response struct {
	StatusCode int
	Header     Fields
	Body       []byte

	written bool
}

// NewResponse returns an empty response with the given status.
func NewResponse(status int) *Response {
	return &Response{StatusCode: status}
}

// Encode serializes r without consuming it.
func Encode(r *Response) []byte {
	return r.AppendTo(nil)
}

// AppendTo appends the wire form of r to dst.
func (r *Response) AppendTo(dst []byte) []byte {
	return http1.AppendResponse(dst, r.StatusCode, r.Header.list, r.Body)
}

// WriteTo writes r to w. A response can be written once; later calls
// return ErrResponseWritten.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	if r.written {
		return 0, ErrResponseWritten
	}
	r.written = true
	n, err := http1.WriteResponse(w, r.StatusCode, r.Header.list, r.Body)
	return int64(n), err
}

// Written reports whether WriteTo has been called.
func (r *Response) Written() bool { return r.written }

// Text returns a response with a plain-text body and matching
// Content-Type and Content-Length headers.
func Text(status int, body string) *Response {
	r := NewResponse(status)
	r.Header.Set("Content-Type", "text/plain; charset=utf-8")
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))
	r.Body = []byte(body)
	return r
}

// Bytes returns a response carrying body with a Content-Length header.
func Bytes(status int, contentType string, body []byte) *Response {
	r := NewResponse(status)
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	r.Header.Set("Content-Length", strconv.Itoa(len(body)))
	r.Body = body
	return r
}
