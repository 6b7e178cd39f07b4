package identity

import "context"

type ctxKey struct{}

// WithActor returns a context carrying the acting user's email.
func WithActor(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, ctxKey{}, email)
}

// ActorFromContext resolves the current actor, or "" when none is set.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return v
	}
	return ""
}
