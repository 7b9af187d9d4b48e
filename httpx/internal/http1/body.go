package http1

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

const (
	headerContentLength    = "Content-Length"
	headerTransferEncoding = "Transfer-Encoding"
)

// ResolveBody decides the body framing from h and reads the body from src.
// It returns nil when the message has no body and a non-nil slice (possibly
// empty) when a Content-Length was declared. maxBody <= 0 means no limit.
//
// Content-Length together with Transfer-Encoding is rejected outright, and
// chunked bodies are reported as not implemented rather than skipped.
func ResolveBody(h map[string]string, src ByteSource, maxBody int64) ([]byte, error) {
	cl, hasCL := LookupFold(h, headerContentLength)
	te, hasTE := LookupFold(h, headerTransferEncoding)

	switch {
	case !hasCL && !hasTE:
		return nil, nil
	case hasCL && hasTE:
		return nil, newError(KindAmbiguousFraming, "both Content-Length and Transfer-Encoding present", "")
	case hasTE:
		if strings.EqualFold(te, "chunked") {
			return nil, newError(KindNotImplemented, "chunked transfer-encoding", te)
		}
		return nil, newError(KindUnsupportedEncoding, "unsupported transfer-encoding", te)
	}

	if vv := valuesFold(h, headerContentLength); len(vv) > 1 {
		return nil, newError(KindInvalidContentLength, "conflicting Content-Length values", strings.Join(vv, ", "))
	}
	n, err := parseContentLength(cl)
	if err != nil {
		return nil, err
	}
	if maxBody > 0 && n > maxBody {
		return nil, newError(KindBodyTooLarge, "declared body exceeds limit", cl)
	}
	body, err := src.ReadFull(n)
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, &Error{
				Kind:   KindTruncatedBody,
				Detail: "got " + strconv.Itoa(len(body)) + " of " + strconv.FormatInt(n, 10) + " bytes",
				Err:    err,
			}
		}
		return nil, ioError(err)
	}
	return body, nil
}

// parseContentLength accepts only plain ASCII decimal digits.
func parseContentLength(v string) (int64, error) {
	if v == "" {
		return 0, newError(KindInvalidContentLength, "empty Content-Length", v)
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return 0, newError(KindInvalidContentLength, "not a decimal integer", v)
		}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &Error{Kind: KindInvalidContentLength, Detail: "out of range", Text: v, Err: err}
	}
	return n, nil
}
