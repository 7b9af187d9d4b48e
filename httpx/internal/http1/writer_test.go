package http1

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendResponse(t *testing.T) {
	fields := []Field{{"hi", "there"}, {"this", "is a header"}}
	got := AppendResponse(nil, 200, fields, []byte("hi there! I am the body!"))
	require.Equal(t, "HTTP/1.1 200 OK\r\nhi: there\r\nthis: is a header\r\n\r\nhi there! I am the body!", string(got))
}

func TestAppendResponse_InvalidDataIsVerbatim(t *testing.T) {
	fields := []Field{
		{"hi&*&(*&(*&*&(&*(*(&*(&(*)))))))", ")(**&^^%%$$##@!there"},
		{"this*&)(*&&*%#!@w)", "i578439857249052837(*&*^&$$%#%$#^&^%*%&^*%&^&^%$&^%s a header"},
	}
	got := AppendResponse(nil, 1234, fields, []byte("hi there! I am the body!"))
	want := "HTTP/1.1 1234 No Reason Phrase\r\n" +
		"hi&*&(*&(*&*&(&*(*(&*(&(*))))))): )(**&^^%%$$##@!there\r\n" +
		"this*&)(*&&*%#!@w): i578439857249052837(*&*^&$$%#%$#^&^%*%&^*%&^&^%$&^%s a header\r\n" +
		"\r\n" +
		"hi there! I am the body!"
	require.Equal(t, want, string(got))
}

func TestReasonPhrase(t *testing.T) {
	tests := map[int]string{
		200: "OK",
		400: "Bad Request",
		401: "Unauthorized",
		403: "Forbidden",
		404: "Not Found",
		500: "Internal Server Error",
		201: "No Reason Phrase",
		0:   "No Reason Phrase",
		599: "No Reason Phrase",
	}
	for code, want := range tests {
		require.Equal(t, want, ReasonPhrase(code), code)
	}
}

func TestAppendResponse_BinaryRoundTrip(t *testing.T) {
	bodies := [][]byte{
		nil,
		[]byte("\r\n"),
		[]byte("\r\n\r\nheaders-looking\r\n\r\n"),
		{0x00, 0xff, 0x0d, 0x0a, 0x0d, 0x0a, 0x80},
		bytes.Repeat([]byte{0xde, 0xad, '\r', '\n'}, 1024),
	}
	for _, body := range bodies {
		out := AppendResponse(nil, 200, nil, body)
		i := bytes.Index(out, []byte("\r\n\r\n"))
		require.GreaterOrEqual(t, i, 0)
		require.Equal(t, len(body), len(out[i+4:]))
		require.True(t, bytes.Equal(body, out[i+4:]))
	}
}

func TestWriteResponse(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteResponse(&buf, 404, []Field{{"Content-Length", "0"}}, nil)
	require.NoError(t, err)
	require.Equal(t, buf.Len(), n)
	require.Equal(t, "HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n", buf.String())
}
