package http1

import (
	"io"
	"strconv"
)

// Field is one response header line. Order is preserved on the wire.
type Field struct {
	Name  string
	Value string
}

// AppendResponse appends an HTTP/1.1 response to dst and returns the
// extended slice. Header names and values are written verbatim and no
// Content-Length is added; callers own both.
func AppendResponse(dst []byte, status int, fields []Field, body []byte) []byte {
	dst = append(dst, "HTTP/1.1 "...)
	dst = strconv.AppendInt(dst, int64(status), 10)
	dst = append(dst, ' ')
	dst = append(dst, ReasonPhrase(status)...)
	dst = append(dst, "\r\n"...)
	for _, f := range fields {
		dst = append(dst, f.Name...)
		dst = append(dst, ": "...)
		dst = append(dst, f.Value...)
		dst = append(dst, "\r\n"...)
	}
	dst = append(dst, "\r\n"...)
	return append(dst, body...)
}

// WriteResponse encodes the response and writes it to w in one call.
func WriteResponse(w io.Writer, status int, fields []Field, body []byte) (int, error) {
	return w.Write(AppendResponse(make([]byte, 0, responseSize(status, fields, body)), status, fields, body))
}

// ReasonPhrase returns the fixed reason text for status.
func ReasonPhrase(status int) string {
	switch status {
	case 200:
		return "OK"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	default:
		return "No Reason Phrase"
	}
}

func responseSize(status int, fields []Field, body []byte) int {
	n := len("HTTP/1.1 000 \r\n\r\n") + len(ReasonPhrase(status)) + len(body)
	for _, f := range fields {
		n += len(f.Name) + len(f.Value) + 4
	}
	return n
}
