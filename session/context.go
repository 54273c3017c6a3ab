package session

import "context"

type bridgeKey struct{}

func WithBridge(ctx context.Context, b *Bridge) context.Context {
	return context.WithValue(ctx, bridgeKey{}, b)
}

func FromContext(ctx context.Context) (*Bridge, bool) {
	b, ok := ctx.Value(bridgeKey{}).(*Bridge)
	return b, ok && b != nil
}

// MustFromContext panics when the session middleware did not run for ctx.
// Reading the user anywhere else is a programming error.
func MustFromContext(ctx context.Context) *Bridge {
	b, ok := FromContext(ctx)
	if !ok {
		panic("session: no bridge in context, the session middleware is not installed for this route")
	}
	return b
}
