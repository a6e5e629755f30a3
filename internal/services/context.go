package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	transportKey contextKey = "transport"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTransport annotates context with the transport that carried the call.
func WithTransport(ctx context.Context, transport string) context.Context {
	if transport == "" {
		return ctx
	}
	return context.WithValue(ctx, transportKey, transport)
}

// TransportFromContext returns the transport name if present.
func TransportFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(transportKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
