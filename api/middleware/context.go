package middleware

import (
	"context"

	"github.com/mercato-app/mercato-backend/pkg/visibility"
)

type contextKey string

const ctxActor contextKey = "actor"

// ActorFromContext returns the authenticated actor, or a guest when the
// request never passed through the auth middleware.
func ActorFromContext(ctx context.Context) visibility.Actor {
	if ctx == nil {
		return visibility.Guest()
	}
	if actor, ok := ctx.Value(ctxActor).(visibility.Actor); ok {
		return actor
	}
	return visibility.Guest()
}

// WithActor injects the actor into the context.
func WithActor(ctx context.Context, actor visibility.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}
