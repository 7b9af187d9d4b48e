package http1

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// ParsedRequest is a fully decoded request head plus its body.
type ParsedRequest struct {
	Method       Method
	Target       string
	Path         string
	RawQuery     string
	Query        map[string]string
	Header       map[string]string
	MinorVersion uint8
	// Body is nil when the request carries no framing headers.
	Body []byte
}

// Reader decodes one request from Src.
type Reader struct {
	Src ByteSource
	// MaxTotalHeaderBytes bounds the request line plus all header lines.
	// Zero means no limit.
	MaxTotalHeaderBytes int
	// MaxBodyBytes bounds the declared Content-Length. Zero means no limit.
	MaxBodyBytes int64

	headBytes int
}

// NewReader returns a Reader over r with a per-line limit of maxLine bytes.
func NewReader(r io.Reader, maxLine int) *Reader {
	return &Reader{Src: NewLineReader(r, maxLine)}
}

// ReadRequest decodes a request line, the header block and the body. On
// error the returned request is always nil.
func (r *Reader) ReadRequest() (*ParsedRequest, error) {
	r.headBytes = 0
	line, err := r.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &Error{Kind: KindMalformedRequestLine, Detail: "empty request line", Err: io.EOF}
		}
		return nil, err
	}
	if line == "" {
		return nil, newError(KindMalformedRequestLine, "empty request line", "")
	}
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return nil, newError(KindMalformedRequestLine, "bad request line", line)
	}
	method, err := ParseMethod(parts[0])
	if err != nil {
		return nil, err
	}
	path, rawQuery := SplitTarget(parts[1])
	query := ParseQuery(rawQuery)
	minor, err := ParseVersion(parts[2])
	if err != nil {
		return nil, err
	}

	lines, err := r.readHeaderLines()
	if err != nil {
		return nil, err
	}
	hdr := ParseHeaders(lines)

	body, err := ResolveBody(hdr, r.Src, r.MaxBodyBytes)
	if err != nil {
		return nil, err
	}
	return &ParsedRequest{
		Method:       method,
		Target:       parts[1],
		Path:         path,
		RawQuery:     rawQuery,
		Query:        query,
		Header:       hdr,
		MinorVersion: minor,
		Body:         body,
	}, nil
}

// readHeaderLines reads up to, and consumes, the blank terminator line.
func (r *Reader) readHeaderLines() ([]string, error) {
	var lines []string
	for {
		line, err := r.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ioError(io.ErrUnexpectedEOF)
			}
			return nil, err
		}
		if line == "" {
			return lines, nil
		}
		lines = append(lines, line)
	}
}

func (r *Reader) readLine() (string, error) {
	line, err := r.Src.ReadLine()
	if err != nil {
		if errors.Is(err, errLineTooLong) {
			return "", &Error{Kind: KindHeaderTooLarge, Detail: "line exceeds limit", Err: err}
		}
		return "", ioError(err)
	}
	r.headBytes += len(line) + 2
	if r.MaxTotalHeaderBytes > 0 && r.headBytes > r.MaxTotalHeaderBytes {
		return "", newError(KindHeaderTooLarge, "header block exceeds limit", "")
	}
	if !utf8.ValidString(line) {
		return "", newError(KindUTF8, "request head is not valid UTF-8", line)
	}
	return line, nil
}
