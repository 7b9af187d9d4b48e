package httpx

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dqx0.com/go/fedora/internal/obs"
)

func startServer(t *testing.T, h Handler, cfg func(*Server)) (*Server, string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &Server{Handler: h, ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second}
	if cfg != nil {
		cfg(s)
	}
	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
		require.ErrorIs(t, <-done, ErrServerClosed)
	})
	return s, ln.Addr().String()
}

// roundTrip sends raw and returns everything the server wrote before closing.
func roundTrip(t *testing.T, addr, raw string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()
	_ = c.SetDeadline(time.Now().Add(5 * time.Second))
	_, err = io.WriteString(c, raw)
	require.NoError(t, err)
	b, err := io.ReadAll(c)
	require.NoError(t, err)
	return string(b)
}

func echoMux() *ServeMux {
	mux := NewServeMux()
	mux.HandleFunc(MethodGet, "/", func(r *Request) *Response {
		res := NewResponse(200)
		res.Header.Set("X-Name", r.Query["name"])
		res.Body = []byte("hello " + r.Query["name"])
		return res
	})
	mux.HandleFunc(MethodPost, "/echo", func(r *Request) *Response {
		return Bytes(200, "application/octet-stream", r.Body)
	})
	mux.HandleFunc(MethodGet, "/panic", func(*Request) *Response { panic("boom") })
	mux.HandleFunc(MethodGet, "/nil", func(*Request) *Response { return nil })
	mux.HandleFunc(MethodGet, "/id", func(r *Request) *Response {
		id, _ := RequestIDFrom(r.Context())
		cid, _ := CorrelationIDFrom(r.Context())
		return Text(200, id+"|"+cid+"|"+r.RequestID)
	})
	return mux
}

func TestServer_GET(t *testing.T) {
	_, addr := startServer(t, echoMux(), nil)
	out := roundTrip(t, addr, "GET /?name=joe HTTP/1.1\r\nHost: x\r\n\r\n")
	require.True(t, strings.HasPrefix(out, "HTTP/1.1 200 OK\r\nX-Name: joe\r\nX-Request-Id: "), out)
	require.Contains(t, out, "\r\nContent-Length: 9\r\nConnection: close\r\n\r\nhello joe")
}

func TestServer_EchoBinaryBody(t *testing.T) {
	_, addr := startServer(t, echoMux(), nil)
	body := "a\r\n\r\nb\x00\xff"
	out := roundTrip(t, addr, "POST /echo HTTP/1.1\r\nContent-Length: 8\r\n\r\n"+body)
	i := strings.Index(out, "\r\n\r\n")
	require.Equal(t, body, out[i+4:])
	require.Contains(t, out, "Content-Type: application/octet-stream\r\nContent-Length: 8\r\n")
}

func TestServer_RejectsBadRequests(t *testing.T) {
	_, addr := startServer(t, echoMux(), func(s *Server) { s.MaxBodyBytes = 4 })
	tests := []struct {
		raw    string
		status string
		kind   string
	}{
		{"BREW / HTTP/1.1\r\n\r\n", "400 Bad Request", "invalid_method"},
		{"GET / HTTP/2.0\r\n\r\n", "400 Bad Request", "invalid_version"},
		{"POST /echo HTTP/1.1\r\nContent-Length: 1\r\nTransfer-Encoding: chunked\r\n\r\n", "400 Bad Request", "ambiguous_framing"},
		{"POST /echo HTTP/1.1\r\nTransfer-Encoding: chunked\r\n\r\n", "501 No Reason Phrase", "not_implemented"},
		{"POST /echo HTTP/1.1\r\nContent-Length: 5\r\n\r\n", "413 No Reason Phrase", "body_too_large"},
	}
	for _, tt := range tests {
		out := roundTrip(t, addr, tt.raw)
		require.True(t, strings.HasPrefix(out, "HTTP/1.1 "+tt.status+"\r\n"), out)
		require.True(t, strings.HasSuffix(out, "\r\n\r\n"+tt.kind+"\n"), out)
	}
}

func TestServer_NotFoundAndHandlerFailures(t *testing.T) {
	_, addr := startServer(t, echoMux(), nil)
	require.True(t, strings.HasPrefix(roundTrip(t, addr, "PUT /missing HTTP/1.1\r\n\r\n"), "HTTP/1.1 404 Not Found\r\n"))
	require.True(t, strings.HasPrefix(roundTrip(t, addr, "GET /panic HTTP/1.1\r\n\r\n"), "HTTP/1.1 500 Internal Server Error\r\n"))
	require.True(t, strings.HasPrefix(roundTrip(t, addr, "GET /nil HTTP/1.1\r\n\r\n"), "HTTP/1.1 500 Internal Server Error\r\n"))
}

func TestServer_NilHandler(t *testing.T) {
	_, addr := startServer(t, nil, nil)
	require.True(t, strings.HasPrefix(roundTrip(t, addr, "GET / HTTP/1.1\r\n\r\n"), "HTTP/1.1 404 Not Found\r\n"))
}

func TestServer_RequestIDs(t *testing.T) {
	_, addr := startServer(t, echoMux(), nil)
	out := roundTrip(t, addr, "GET /id HTTP/1.1\r\nx-request-id: client-7\r\n\r\n")
	i := strings.Index(out, "\r\n\r\n")
	parts := strings.Split(out[i+4:], "|")
	require.Len(t, parts, 3)
	require.Len(t, parts[0], 16)
	require.Equal(t, "client-7", parts[1])
	require.Equal(t, parts[0], parts[2])
	require.Contains(t, out, "X-Request-Id: "+parts[0]+"\r\n")
}

func TestServer_SilentClose(t *testing.T) {
	_, addr := startServer(t, echoMux(), nil)
	require.Equal(t, "", roundTripClose(t, addr))
}

// roundTripClose connects, half-closes without sending, and reads the reply.
func roundTripClose(t *testing.T, addr string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer c.Close()
	_ = c.SetDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, c.(*net.TCPConn).CloseWrite())
	b, err := io.ReadAll(c)
	require.NoError(t, err)
	return string(b)
}

func TestServer_LogsAndMetrics(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := obs.NewRecorder()
	_, addr := startServer(t, echoMux(), func(s *Server) {
		s.Logger = zap.New(core)
		s.Meter = rec
	})
	roundTrip(t, addr, "GET /?name=a HTTP/1.1\r\n\r\n")
	roundTrip(t, addr, "PATCH / HTTP/1.1\r\n\r\n")

	require.Eventually(t, func() bool {
		return rec.CounterValue("httpx_requests_total", obs.Label{Key: "method", Value: "GET"}, obs.Label{Key: "code", Value: "200"}) == 1 &&
			rec.CounterValue("httpx_decode_errors_total", obs.Label{Key: "kind", Value: "invalid_method"}) == 1 &&
			rec.HistogramCount("httpx_request_duration_seconds", obs.Label{Key: "method", Value: "GET"}, obs.Label{Key: "code", Value: "200"}) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return logs.FilterMessage("request").Len() == 1 && logs.FilterMessage("rejected request").Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
	entry := logs.FilterMessage("request").All()[0]
	require.Equal(t, "/", entry.ContextMap()["path"])
	require.Equal(t, int64(200), entry.ContextMap()["status"])
}

func TestServer_ServeAfterClose(t *testing.T) {
	s := &Server{}
	require.NoError(t, s.Close())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.ErrorIs(t, s.Serve(ln), ErrServerClosed)
}

func TestServer_ConnectionHeaderFromHandler(t *testing.T) {
	mux := NewServeMux()
	mux.HandleFunc(MethodGet, "/", func(*Request) *Response {
		res := Text(200, "ok")
		res.Header.Set("connection", "keep-alive")
		return res
	})
	_, addr := startServer(t, mux, nil)
	out := roundTrip(t, addr, "GET / HTTP/1.1\r\n\r\n")
	require.Equal(t, 1, strings.Count(strings.ToLower(out), "connection:"), out)
	require.Contains(t, out, "\r\nConnection: close\r\n")
}

func TestServer_TrailingBytesAfterBody(t *testing.T) {
	_, addr := startServer(t, echoMux(), nil)
	extra := strings.Repeat("x", 1<<20)
	for i := 0; i < 5; i++ {
		c, err := net.Dial("tcp", addr)
		require.NoError(t, err)
		_ = c.SetDeadline(time.Now().Add(5 * time.Second))
		go func() {
			_, _ = io.WriteString(c, "POST /echo HTTP/1.1\r\nContent-Length: 1\r\n\r\nz"+extra)
		}()
		b, err := io.ReadAll(c)
		_ = c.Close()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(b), "HTTP/1.1 200 OK\r\n"), string(b))
		require.True(t, strings.HasSuffix(string(b), "\r\n\r\nz"))
	}
}
