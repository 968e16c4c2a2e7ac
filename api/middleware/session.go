package middleware

import (
	"net/http"

	"github.com/neonclouds/neonclouds-backend/api/responses"
	"github.com/neonclouds/neonclouds-backend/internal/session"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

// SessionTokenHeader carries the shopper's opaque session token. The
// middleware echoes it on every response so clients can persist it.
const SessionTokenHeader = "X-Session-Token"

// Session resolves the request's session token against the store,
// minting a fresh session when the header is absent. Requests with a
// token that no longer resolves (expired, evicted, or bogus) get a
// fresh session too: an anonymous storefront should never strand a
// shopper on a dead token.
func Session(store *session.Store, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sess *session.Session
			if token := r.Header.Get(SessionTokenHeader); token != "" {
				if found, err := store.Get(token); err == nil {
					sess = found
				}
			}
			if sess == nil {
				created, err := store.Create()
				if err != nil {
					responses.WriteError(ctx, logg, w, err)
					return
				}
				sess = created
			}

			w.Header().Set(SessionTokenHeader, sess.ID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sess.ID)
			}
			ctx = WithSession(ctx, sess)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
