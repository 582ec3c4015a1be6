package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// FromCtx returns the global logger with request_id attached when present.
func FromCtx(ctx context.Context) *zap.Logger {
	return With(ctx, L())
}

// With decorates l with the request_id carried by ctx, if any.
func With(ctx context.Context, l *zap.Logger) *zap.Logger {
	if reqID := RequestIDFrom(ctx); reqID != "" {
		return l.With(zap.String("request_id", reqID))
	}
	return l
}
