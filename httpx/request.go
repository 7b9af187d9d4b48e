package httpx

import (
	"bytes"
	"context"
	"io"
	"maps"
	"strconv"

	"dqx0.com/go/fedora/httpx/internal/http1"
)

// ByteSource is what Decode reads from: head lines first, then exactly
// Content-Length body bytes. Transports implement it; NewByteSource wraps
// any io.Reader.
type ByteSource = http1.ByteSource

// NewByteSource returns a ByteSource over r. maxLine bounds each head line;
// zero means no limit.
func NewByteSource(r io.Reader, maxLine int) ByteSource {
	return http1.NewLineReader(r, maxLine)
}

// Request is a decoded HTTP/1.x request. A Request is either returned whole
// by Decode or not at all.
type Request struct {
	Method Method
	// Path is the target up to the first '?'. It is never empty.
	Path string
	// RawQuery is the target after the first '?', undecoded.
	RawQuery     string
	Query        map[string]string
	Header       Header
	MinorVersion uint8
	// Body is nil when the request had no Content-Length. A declared
	// length of zero gives a non-nil empty slice.
	Body []byte
	// RequestID is assigned by the server for log correlation.
	RequestID string

	ctx context.Context
}

// Decode reads one request from src.
func Decode(src ByteSource) (*Request, error) {
	return decode(&http1.Reader{Src: src})
}

// ReadRequest decodes one request from r. Bytes past the body stay
// buffered in r when r is a *bufio.Reader.
func ReadRequest(r io.Reader) (*Request, error) {
	return decode(http1.NewReader(r, 0))
}

// ParseRequest decodes a complete request held in memory.
func ParseRequest(b []byte) (*Request, error) {
	return decode(http1.NewReader(bytes.NewReader(b), 0))
}

func decode(rr *http1.Reader) (*Request, error) {
	pr, err := rr.ReadRequest()
	if err != nil {
		return nil, err
	}
	return &Request{
		Method:       pr.Method,
		Path:         pr.Path,
		RawQuery:     pr.RawQuery,
		Query:        pr.Query,
		Header:       Header(pr.Header),
		MinorVersion: pr.MinorVersion,
		Body:         pr.Body,
	}, nil
}

// Proto returns "HTTP/1.x".
func (r *Request) Proto() string {
	return "HTTP/1." + strconv.Itoa(int(r.MinorVersion))
}

// HasBody reports whether the request declared a body.
func (r *Request) HasBody() bool { return r.Body != nil }

// Context returns the request's context. If nil, returns Background.
func (r *Request) Context() context.Context {
	if r == nil || r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext returns a shallow copy of r with its context changed to ctx.
func WithContext(r *Request, ctx context.Context) *Request {
	if r == nil {
		return nil
	}
	r2 := *r
	r2.ctx = ctx
	return &r2
}

// Clone returns a deep copy of r that shares no maps or buffers with it,
// for handlers that hand the request to another goroutine.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	r2 := *r
	r2.Query = maps.Clone(r.Query)
	r2.Header = maps.Clone(r.Header)
	if r.Body != nil {
		r2.Body = bytes.Clone(r.Body)
	}
	return &r2
}
