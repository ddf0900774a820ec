package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	userIDContextKey contextKey = "user_id"
	userIDSinkKey    contextKey = "user_id_sink"
)

// ContextWithUserID stores the authenticated user ID in ctx. If an outer
// layer installed a sink with ContextWithUserIDSink, the ID is copied there too.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	if sink, ok := ctx.Value(userIDSinkKey).(*string); ok && sink != nil {
		*sink = userID
	}
	return context.WithValue(ctx, userIDContextKey, userID)
}

// ContextWithUserIDSink lets a middleware that runs before authentication
// learn who the caller turned out to be.
func ContextWithUserIDSink(ctx context.Context, sink *string) context.Context {
	return context.WithValue(ctx, userIDSinkKey, sink)
}

// UserIDFromContext returns the authenticated user ID.
// Returns empty string if not authenticated.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDContextKey).(string)
	return id
}
