package httpx

import (
	"context"

	"go.uber.org/zap"
)

// ctxKey scopes values this package stores in a request context.
type ctxKey struct{ name string }

var (
	requestIDKey     = &ctxKey{"request-id"}
	correlationIDKey = &ctxKey{"correlation-id"}
	loggerKey        = &ctxKey{"logger"}
)

// WithRequestID returns a copy of ctx holding the server-assigned request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the server-assigned request ID, if any.
func RequestIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, requestIDKey)
}

// WithCorrelationID returns a copy of ctx holding the X-Request-Id value
// the client sent.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationIDFrom returns the client's X-Request-Id, if it sent one.
func CorrelationIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, correlationIDKey)
}

// WithLogger returns a copy of ctx holding a request-scoped logger.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// LoggerFrom returns the request-scoped logger stored in ctx, falling back
// to the package logger.
func LoggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return Logger()
}

func stringFrom(ctx context.Context, k *ctxKey) (string, bool) {
	s, ok := ctx.Value(k).(string)
	return s, ok && s != ""
}
