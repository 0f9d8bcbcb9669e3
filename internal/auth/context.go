package auth

import "context"

type contextKey struct{}

// Identity is the resolved caller attached to a request after the auth guard
// has validated its bearer token.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// UserID returns the caller's user id, or "" for unauthenticated contexts.
func UserID(ctx context.Context) string {
	id, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return id.UserID
}
