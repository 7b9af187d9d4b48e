package httpx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode_HeaderOrder(t *testing.T) {
	r := NewResponse(200)
	r.Header.Set("hi", "there")
	r.Header.Set("this", "is a header")
	r.Header.Set("hi", "again")
	r.Body = []byte("hi there! I am the body!")
	require.Equal(t, "HTTP/1.1 200 OK\r\nhi: again\r\nthis: is a header\r\n\r\nhi there! I am the body!", string(Encode(r)))
}

func TestEncode_NoImplicitHeaders(t *testing.T) {
	r := &Response{StatusCode: 403, Body: []byte("no")}
	require.Equal(t, "HTTP/1.1 403 Forbidden\r\n\r\nno", string(Encode(r)))
}

func TestEncode_BodyRoundTrip(t *testing.T) {
	body := []byte{'\r', '\n', 0, 1, 2, '\r', '\n', '\r', '\n', 0xff}
	out := Encode(&Response{StatusCode: 200, Body: body})
	i := bytes.Index(out, []byte("\r\n\r\n"))
	require.Equal(t, body, out[i+4:])
}

func TestResponse_WriteOnce(t *testing.T) {
	r := Text(404, "gone")
	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	require.True(t, r.Written())
	require.Equal(t, "HTTP/1.1 404 Not Found\r\nContent-Type: text/plain; charset=utf-8\r\nContent-Length: 4\r\n\r\ngone", buf.String())

	_, err = r.WriteTo(&buf)
	require.ErrorIs(t, err, ErrResponseWritten)
}

func TestBytes(t *testing.T) {
	r := Bytes(200, "", []byte{1, 2, 3})
	require.Equal(t, []string{"Content-Length"}, r.Header.Keys())
	require.Equal(t, "3", r.Header.Get("Content-Length"))
}

func TestFields(t *testing.T) {
	var f Fields
	require.Equal(t, 0, f.Len())
	f.Set("B", "1")
	f.Set("A", "2")
	f.Set("C", "3")
	require.Equal(t, []string{"B", "A", "C"}, f.Keys())

	f.Del("A")
	require.Equal(t, []string{"B", "C"}, f.Keys())
	_, ok := f.Lookup("A")
	require.False(t, ok)

	f.Set("content-length", "0")
	require.True(t, f.Has("Content-Length"))
	require.Equal(t, "", f.Get("Content-Length"))
	require.Equal(t, 3, f.Len())
}

func TestFields_DelFold(t *testing.T) {
	var f Fields
	f.Set("connection", "keep-alive")
	f.Set("X-A", "1")
	f.Set("CONNECTION", "upgrade")
	f.DelFold("Connection")
	require.Equal(t, []string{"X-A"}, f.Keys())
}

func TestFinalize_ReplacesConnection(t *testing.T) {
	res := Text(200, "ok")
	res.Header.Set("connection", "keep-alive")
	finalize(res)
	out := string(Encode(res))
	require.Equal(t, 1, strings.Count(strings.ToLower(out), "connection:"))
	require.Contains(t, out, "\r\nConnection: close\r\n")
}
