package http1

import (
	"strings"
)

// Kind categorizes a decode failure.
type Kind string

const (
	KindInvalidMethod        Kind = "invalid_method"
	KindMalformedRequestLine Kind = "malformed_request_line"
	KindInvalidVersion       Kind = "invalid_version"
	KindAmbiguousFraming     Kind = "ambiguous_framing"
	KindUnsupportedEncoding  Kind = "unsupported_encoding"
	KindNotImplemented       Kind = "not_implemented"
	KindInvalidContentLength Kind = "invalid_content_length"
	KindTruncatedBody        Kind = "truncated_body"
	KindUTF8                 Kind = "utf8"
	KindIO                   Kind = "io"
	KindHeaderTooLarge       Kind = "header_too_large"
	KindBodyTooLarge         Kind = "body_too_large"
)

// Error is returned by every decode step. Text holds the offending raw
// input, when there is one, so callers can build a diagnostic.
type Error struct {
	Kind   Kind
	Detail string
	Text   string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("http1: ")
	b.WriteString(string(e.Kind))
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Text != "" {
		b.WriteString(" (got ")
		b.WriteString(quote(e.Text))
		b.WriteByte(')')
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinels below work with
// errors.Is regardless of detail or text.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

var (
	ErrInvalidMethod        = &Error{Kind: KindInvalidMethod}
	ErrMalformedRequestLine = &Error{Kind: KindMalformedRequestLine}
	ErrInvalidVersion       = &Error{Kind: KindInvalidVersion}
	ErrAmbiguousFraming     = &Error{Kind: KindAmbiguousFraming}
	ErrUnsupportedEncoding  = &Error{Kind: KindUnsupportedEncoding}
	ErrNotImplemented       = &Error{Kind: KindNotImplemented}
	ErrInvalidContentLength = &Error{Kind: KindInvalidContentLength}
	ErrTruncatedBody        = &Error{Kind: KindTruncatedBody}
	ErrUTF8                 = &Error{Kind: KindUTF8}
	ErrIO                   = &Error{Kind: KindIO}
	ErrHeaderTooLarge       = &Error{Kind: KindHeaderTooLarge}
	ErrBodyTooLarge         = &Error{Kind: KindBodyTooLarge}
)

func newError(kind Kind, detail, text string) *Error {
	return &Error{Kind: kind, Detail: detail, Text: text}
}

func ioError(err error) *Error {
	return &Error{Kind: KindIO, Err: err}
}

// quote keeps diagnostics short; request lines can be arbitrarily long.
func quote(s string) string {
	const max = 64
	if len(s) > max {
		s = s[:max] + "..."
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
