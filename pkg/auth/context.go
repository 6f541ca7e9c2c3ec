package auth

import "context"

type usernameKey struct{}

// ContextWithUsername attaches the authenticated username to the context.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey{}, username)
}

// UsernameFromContext returns the authenticated username, or "" when the
// request carried no session.
func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey{}).(string)
	return username
}
