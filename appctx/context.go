package appctx

import (
	"context"
)

// Context keys for request scoped values
type contextKey string

const (
	BodyContextKey      contextKey = "body"
	RequestIDContextKey contextKey = "request_id"
)

// SetBody adds the parsed JSON request body to the context
func SetBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, BodyContextKey, body)
}

// GetBody extracts the parsed JSON request body from the context
func GetBody(ctx context.Context) (map[string]any, bool) {
	body, ok := ctx.Value(BodyContextKey).(map[string]any)
	return body, ok
}

// SetRequestID adds the request id to the context
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// GetRequestID extracts the request id from the context, empty if unset
func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(RequestIDContextKey).(string)
	return requestID
}
