package http1

import (
	"bufio"
	"errors"
	"io"
)

// ByteSource yields the head of a message line by line and then, if the
// framing headers ask for it, a fixed number of body bytes. Both calls may
// block on the underlying transport.
type ByteSource interface {
	// ReadLine returns the next line without its terminator. io.EOF is
	// returned only when no byte was read.
	ReadLine() (string, error)
	// ReadFull returns exactly n bytes or an error. A short read returns
	// the bytes received together with io.ErrUnexpectedEOF.
	ReadFull(n int64) ([]byte, error)
}

var errLineTooLong = errors.New("http1: header line too long")

// LineReader is the bufio-backed ByteSource used by the server.
type LineReader struct {
	BR *bufio.Reader
	// MaxLineBytes bounds a single head line. Zero means no limit.
	MaxLineBytes int
}

// NewLineReader wraps r unless it already is a *bufio.Reader.
func NewLineReader(r io.Reader, maxLine int) *LineReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &LineReader{BR: br, MaxLineBytes: maxLine}
}

func (r *LineReader) ReadLine() (string, error) {
	var line []byte
	for {
		frag, err := r.BR.ReadSlice('\n')
		line = append(line, frag...)
		if r.MaxLineBytes > 0 && len(line) > r.MaxLineBytes+2 {
			return "", errLineTooLong
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				// Partial line: the peer closed mid-head.
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		break
	}
	line = line[:len(line)-1]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	if r.MaxLineBytes > 0 && len(line) > r.MaxLineBytes {
		return "", errLineTooLong
	}
	return string(line), nil
}

func (r *LineReader) ReadFull(n int64) ([]byte, error) {
	if n <= 0 {
		return []byte{}, nil
	}
	// The buffer grows with the bytes received, not with the declared size.
	const step = 64 << 10
	buf := make([]byte, 0, min(n, step))
	for int64(len(buf)) < n {
		want := min(n-int64(len(buf)), step)
		start := len(buf)
		buf = append(buf, make([]byte, want)...)
		got, err := io.ReadFull(r.BR, buf[start:])
		buf = buf[:start+got]
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return buf, err
		}
	}
	return buf, nil
}
