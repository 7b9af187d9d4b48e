// Package httpx decodes HTTP/1.x requests from a byte stream and encodes
// responses back to wire bytes, with a strict body-framing policy.
//
// Highlights
//   - Decode: request line (GET, POST, PUT, DELETE in any case), target
//     split into path and query, header block, minor version.
//   - Framing: Content-Length bodies only. Content-Length together with
//     Transfer-Encoding is rejected, chunked bodies report
//     ErrNotImplemented, other encodings ErrUnsupportedEncoding.
//   - Encode: status line, headers in insertion order, body verbatim. No
//     header is added behind the caller's back.
//   - Server: one request per connection, size limits, deadlines, zap
//     logging and an obs.Meter hook.
//
// Header and query maps keep one value per key and the last occurrence
// wins. Header keys are case-sensitive; use Header.GetFold for a
// case-insensitive lookup.
//
// Quick start (decode):
//
//	req, err := httpx.ParseRequest([]byte("GET /?name=joe HTTP/1.1\r\nHost: x\r\n\r\n"))
//	if err != nil { log.Fatal(err) }
//	fmt.Println(req.Method, req.Path, req.Query["name"])
//
// Quick start (server):
//
//	mux := httpx.NewServeMux()
//	mux.HandleFunc(httpx.MethodGet, "/", func(r *httpx.Request) *httpx.Response {
//	    return httpx.Text(200, "hello")
//	})
//	s := &httpx.Server{Addr: ":8080", Handler: mux}
//	if err := s.ListenAndServe(); err != nil { log.Fatal(err) }
package httpx
