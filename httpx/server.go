package httpx

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"dqx0.com/go/fedora/httpx/internal/http1"
	"dqx0.com/go/fedora/internal/obs"
)

// Handler turns a decoded request into a response.
type Handler interface {
	ServeHTTP(*Request) *Response
}

type HandlerFunc func(*Request) *Response

func (f HandlerFunc) ServeHTTP(r *Request) *Response {
	return f(r)
}

// Server accepts connections and serves exactly one request on each. There
// is no keep-alive: every response carries Connection: close.
type Server struct {
	Addr    string
	Handler Handler
	// ReadTimeout bounds reading the whole request, head and body.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// MaxHeaderBytes bounds one head line. Default 8 KiB.
	MaxHeaderBytes int
	// MaxTotalHeaderBytes bounds the request line plus headers. Default 64 KiB.
	MaxTotalHeaderBytes int
	// MaxBodyBytes bounds Content-Length. Default 1 MiB, negative disables.
	MaxBodyBytes int64

	Logger *zap.Logger
	Meter  obs.Meter

	mu        sync.Mutex
	listeners map[net.Listener]struct{}
	conns     map[net.Conn]struct{}
	closed    bool
	wg        sync.WaitGroup
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = ":8080"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on l until l fails or the server is closed,
// in which case it returns ErrServerClosed.
func (s *Server) Serve(l net.Listener) error {
	if !s.trackListener(l, true) {
		_ = l.Close()
		return ErrServerClosed
	}
	defer s.trackListener(l, false)
	defer l.Close()
	s.logger().Info("serving", zap.String("addr", l.Addr().String()))
	for {
		c, err := l.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			return err
		}
		if !s.trackConn(c, true) {
			_ = c.Close()
			return ErrServerClosed
		}
		go func() {
			defer s.trackConn(c, false)
			s.serveConn(c)
		}()
	}
}

// Close stops all listeners and drops open connections immediately.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	var err error
	for l := range s.listeners {
		if cerr := l.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()
	return err
}

// Shutdown stops accepting and waits for in-flight requests to finish or
// for ctx to end, whichever comes first. Remaining connections are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	var err error
	for l := range s.listeners {
		if cerr := l.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return err
	case <-ctx.Done():
		_ = s.Close()
		return ctx.Err()
	}
}

func (s *Server) trackListener(l net.Listener, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[net.Listener]struct{})
	}
	if add {
		if s.closed {
			return false
		}
		s.listeners[l] = struct{}{}
	} else {
		delete(s.listeners, l)
	}
	return true
}

func (s *Server) trackConn(c net.Conn, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conns == nil {
		s.conns = make(map[net.Conn]struct{})
	}
	if add {
		if s.closed {
			return false
		}
		s.conns[c] = struct{}{}
		s.wg.Add(1)
	} else {
		delete(s.conns, c)
		s.wg.Done()
	}
	return true
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) serveConn(c net.Conn) {
	defer c.Close()
	start := time.Now()
	log := s.logger().With(zap.String("remote", c.RemoteAddr().String()))

	if s.ReadTimeout > 0 {
		_ = c.SetReadDeadline(start.Add(s.ReadTimeout))
	}
	rr := &http1.Reader{
		Src:                 http1.NewLineReader(c, s.headerLimit()),
		MaxTotalHeaderBytes: s.totalHeaderLimit(),
		MaxBodyBytes:        s.bodyLimit(),
	}
	req, err := decode(rr)
	if err != nil {
		s.rejectRequest(c, log, err)
		return
	}

	id := genID()
	req.RequestID = id
	ctx := WithRequestID(context.Background(), id)
	if cid := req.Header.GetFold("X-Request-Id"); cid != "" {
		ctx = WithCorrelationID(ctx, cid)
	}
	log = log.With(zap.String("request_id", id))
	req = WithContext(req, WithLogger(ctx, log))

	res := s.dispatch(req, log)
	res.Header.Set("X-Request-Id", id)
	finalize(res)
	werr := s.write(c, res)
	if werr != nil {
		log.Warn("write response", zap.Error(werr))
	}

	elapsed := time.Since(start)
	labels := []obs.Label{{Key: "method", Value: req.Method.String()}, {Key: "code", Value: strconv.Itoa(res.StatusCode)}}
	s.meter().Counter("httpx_requests_total", 1, labels...)
	s.meter().Histogram("httpx_request_duration_seconds", elapsed.Seconds(), labels...)
	log.Info("request",
		zap.Stringer("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", res.StatusCode),
		zap.Int("body_bytes", len(req.Body)),
		zap.Duration("elapsed", elapsed),
	)
	if werr == nil {
		lingerClose(c)
	}
}

// dispatch runs the handler. A nil response or a panic becomes a 500.
func (s *Server) dispatch(req *Request, log *zap.Logger) (res *Response) {
	h := s.Handler
	if h == nil {
		h = HandlerFunc(func(*Request) *Response { return Text(404, "not found") })
	}
	defer func() {
		if p := recover(); p != nil {
			log.Error("handler panic", zap.Any("panic", p), zap.Stack("stack"))
			res = Text(500, "internal server error")
		}
	}()
	res = h.ServeHTTP(req)
	if res == nil {
		log.Error("handler returned nil response")
		res = Text(500, "internal server error")
	}
	return res
}

// rejectRequest answers a request that failed to decode. A peer that
// connected and sent nothing, or whose transport failed, gets no answer.
func (s *Server) rejectRequest(c net.Conn, log *zap.Logger, err error) {
	if errors.Is(err, io.EOF) {
		return
	}
	kind := "unknown"
	var e *Error
	if errors.As(err, &e) {
		kind = string(e.Kind)
	}
	s.meter().Counter("httpx_decode_errors_total", 1, obs.Label{Key: "kind", Value: kind})
	code := StatusFor(err)
	if code == 0 {
		log.Debug("read request", zap.Error(err))
		return
	}
	log.Info("rejected request", zap.String("kind", kind), zap.Int("status", code), zap.Error(err))
	res := Text(code, kind+"\n")
	finalize(res)
	if werr := s.write(c, res); werr != nil {
		log.Debug("write error response", zap.Error(werr))
		return
	}
	lingerClose(c)
}

// lingerClose half-closes c and discards what the peer still sends for a
// short while, so unread request bytes do not turn the close into a reset
// that destroys the error response in flight.
func lingerClose(c net.Conn) {
	tc, ok := c.(*net.TCPConn)
	if !ok {
		return
	}
	_ = tc.CloseWrite()
	_ = tc.SetReadDeadline(time.Now().Add(lingerTimeout))
	_, _ = io.CopyN(io.Discard, tc, maxLingerBytes)
}

func (s *Server) write(c net.Conn, res *Response) error {
	if s.WriteTimeout > 0 {
		_ = c.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
	}
	_, err := res.WriteTo(c)
	return err
}

// finalize fills in the framing headers a handler left out. Any Connection
// header the handler set, in whatever case, is replaced by close.
func finalize(res *Response) {
	if !res.Header.Has("Content-Length") {
		res.Header.Set("Content-Length", strconv.Itoa(len(res.Body)))
	}
	res.Header.DelFold("Connection")
	res.Header.Set("Connection", "close")
}

const (
	lingerTimeout  = 500 * time.Millisecond
	maxLingerBytes = 4 << 20
)

func (s *Server) headerLimit() int {
	if s.MaxHeaderBytes <= 0 {
		return 8 << 10
	}
	return s.MaxHeaderBytes
}

func (s *Server) totalHeaderLimit() int {
	if s.MaxTotalHeaderBytes <= 0 {
		return 64 << 10
	}
	return s.MaxTotalHeaderBytes
}

func (s *Server) bodyLimit() int64 {
	switch {
	case s.MaxBodyBytes < 0:
		return 0
	case s.MaxBodyBytes == 0:
		return 1 << 20
	default:
		return s.MaxBodyBytes
	}
}

func (s *Server) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return Logger()
}

func (s *Server) meter() obs.Meter {
	if s.Meter != nil {
		return s.Meter
	}
	return obs.NopMeter{}
}
