package middleware

import (
	"context"

	"github.com/neonclouds/neonclouds-backend/internal/session"
)

type contextKey string

const ctxSession contextKey = "storefront_session"

// SessionFromContext returns the session attached by the Session
// middleware, or nil when the request carried none.
func SessionFromContext(ctx context.Context) *session.Session {
	if ctx == nil {
		return nil
	}
	if s, ok := ctx.Value(ctxSession).(*session.Session); ok {
		return s
	}
	return nil
}

// WithSession injects a session into the context. Exposed for handler
// tests.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, s)
}
