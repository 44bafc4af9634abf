package auth

import "context"

type contextKey struct{}

var adminIDKey = contextKey{}

func WithAdminID(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, adminIDKey, adminID)
}

// AdminIDFromContext returns the administrator id placed by Middleware, or ""
// for unauthenticated requests.
func AdminIDFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(adminIDKey).(string); ok {
		return val
	}
	return ""
}
