package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neonclouds/neonclouds-backend/api/middleware"
	"github.com/neonclouds/neonclouds-backend/api/responses"
	"github.com/neonclouds/neonclouds-backend/api/validators"
	"github.com/neonclouds/neonclouds-backend/internal/catalog"
	"github.com/neonclouds/neonclouds-backend/internal/session"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

type cartAddRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type cartUpdateRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// cartAddPayload tells the client to pop the cart drawer open after a
// successful add.
type cartAddPayload struct {
	session.CartView
	CartOpen bool `json:"cart_open"`
}

func sessionFromRequest(r *http.Request) (*session.Session, error) {
	sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session missing from request context")
	}
	return sess, nil
}

// CartFetch returns the session's cart lines and totals.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sess.Cart())
	}
}

// CartAdd puts one unit of a catalog product into the cart; adding a
// product already in the cart bumps its quantity instead.
func CartAdd(products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, ok := products.Get(payload.ProductID)
		if !ok {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, cartAddPayload{
			CartView: sess.CartAdd(product),
			CartOpen: true,
		})
	}
}

// CartUpdateQuantity adjusts a line's quantity by delta; quantities
// never drop below one, and a delta for a product that is not in the
// cart leaves the cart unchanged.
func CartUpdateQuantity(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		responses.WriteSuccess(w, sess.CartUpdateQuantity(productID, payload.Delta))
	}
}

// CartRemove drops a line from the cart. Removing a product that is
// not there is a no-op, not an error.
func CartRemove(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID := chi.URLParam(r, "productId")
		responses.WriteSuccess(w, sess.CartRemove(productID))
	}
}
