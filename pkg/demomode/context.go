package demomode

import "context"

type contextKey struct{}

// Header lets a single request override the process default.
const Header = "X-Demo-Mode"

func WithMode(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, contextKey{}, enabled)
}

// FromContext reports whether demo mode applies to this request. A context that never went
// through the middleware is treated as live.
func FromContext(ctx context.Context) bool {
	enabled, ok := ctx.Value(contextKey{}).(bool)

	return ok && enabled
}
