package httpx

import "sync"

type route struct {
	method Method
	path   string
}

// ServeMux dispatches on the exact method and path. Unknown routes go to
// NotFound, or a plain 404 when NotFound is nil.
type ServeMux struct {
	NotFound Handler

	mu     sync.RWMutex
	routes map[route]Handler
}

func NewServeMux() *ServeMux {
	return &ServeMux{routes: make(map[route]Handler)}
}

// Handle registers h for method and path, replacing any earlier handler.
func (m *ServeMux) Handle(method Method, path string, h Handler) {
	if h == nil {
		panic("httpx: nil handler")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.routes == nil {
		m.routes = make(map[route]Handler)
	}
	m.routes[route{method, path}] = h
}

func (m *ServeMux) HandleFunc(method Method, path string, f func(*Request) *Response) {
	m.Handle(method, path, HandlerFunc(f))
}

func (m *ServeMux) ServeHTTP(r *Request) *Response {
	m.mu.RLock()
	h, ok := m.routes[route{r.Method, r.Path}]
	m.mu.RUnlock()
	if ok {
		return h.ServeHTTP(r)
	}
	if m.NotFound != nil {
		return m.NotFound.ServeHTTP(r)
	}
	return Text(404, "not found")
}
