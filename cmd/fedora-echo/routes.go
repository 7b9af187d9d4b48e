package main

import (
	"bytes"
	"slices"

	"go.uber.org/zap"

	"dqx0.com/go/fedora/httpx"
	"dqx0.com/go/fedora/internal/obs"
)

const maxReversed = 64 << 10

const usage = "Try POSTing data to /echo such as: `curl localhost:3000/echo -XPOST -d 'hello world'`\n"

func newMux(rec *obs.Recorder) *httpx.ServeMux {
	mux := httpx.NewServeMux()
	mux.HandleFunc(httpx.MethodGet, "/", func(*httpx.Request) *httpx.Response {
		return httpx.Text(200, usage)
	})
	mux.HandleFunc(httpx.MethodPost, "/echo", func(r *httpx.Request) *httpx.Response {
		return httpx.Bytes(200, "application/octet-stream", r.Body)
	})
	mux.HandleFunc(httpx.MethodPost, "/echo/uppercase", func(r *httpx.Request) *httpx.Response {
		return httpx.Bytes(200, "application/octet-stream", bytes.ToUpper(r.Body))
	})
	mux.HandleFunc(httpx.MethodPost, "/echo/reversed", func(r *httpx.Request) *httpx.Response {
		if len(r.Body) > maxReversed {
			httpx.LoggerFrom(r.Context()).Debug("reverse body too big", zap.Int("body_bytes", len(r.Body)))
			return httpx.Text(413, "Body too big\n")
		}
		b := slices.Clone(r.Body)
		slices.Reverse(b)
		return httpx.Bytes(200, "application/octet-stream", b)
	})
	mux.HandleFunc(httpx.MethodGet, "/metrics", func(r *httpx.Request) *httpx.Response {
		var buf bytes.Buffer
		if err := rec.WriteText(&buf); err != nil {
			httpx.LoggerFrom(r.Context()).Error("gather metrics", zap.Error(err))
			return httpx.Text(500, "internal server error\n")
		}
		return httpx.Bytes(200, obs.TextContentType, buf.Bytes())
	})
	return mux
}
