package controllers

import (
	"net/http"

	"github.com/neonclouds/neonclouds-backend/api/responses"
	"github.com/neonclouds/neonclouds-backend/internal/session"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

// SessionDelete drops the shopper's session: cart, navigation, chat,
// and studio state all go with it. The next request mints a fresh one.
func SessionDelete(store *session.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Delete(sess.ID)
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
