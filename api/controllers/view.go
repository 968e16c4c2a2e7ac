package controllers

import (
	"net/http"

	"github.com/neonclouds/neonclouds-backend/api/responses"
	"github.com/neonclouds/neonclouds-backend/api/validators"
	"github.com/neonclouds/neonclouds-backend/internal/catalog"
	"github.com/neonclouds/neonclouds-backend/internal/navigation"
	"github.com/neonclouds/neonclouds-backend/pkg/enums"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

type navigateRequest struct {
	View string `json:"view" validate:"required"`
}

type selectProductRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type categoryRequest struct {
	Category string `json:"category" validate:"required"`
}

type quickViewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type viewPayload struct {
	Navigation navigation.Snapshot `json:"navigation"`
	Products   []catalog.Product   `json:"products"`
}

func newViewPayload(products *catalog.Catalog, snap navigation.Snapshot) viewPayload {
	return viewPayload{
		Navigation: snap,
		Products:   navigation.VisibleProducts(products, snap.ActiveCategory),
	}
}

// ViewFetch returns the session's current screen plus the product list
// the shop grid would render under the active category filter.
func ViewFetch(products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newViewPayload(products, sess.Nav.Snapshot()))
	}
}

// ViewNavigate switches the current screen.
func ViewNavigate(products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload navigateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := enums.ParseView(payload.View)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid view"))
			return
		}

		snap, err := sess.Nav.Navigate(view)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newViewPayload(products, snap))
	}
}

// ViewSelectProduct makes a product the detail subject and moves the
// session to the detail screen. The gallery state follows: switching
// products resets the active image and rotation.
func ViewSelectProduct(products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectProductRequest
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

		snap := sess.Nav.SelectProduct(product)
		detailSnap := sess.Detail.SetProduct(product)

		responses.WriteSuccess(w, map[string]any{
			"navigation": snap,
			"detail":     detailSnap,
		})
	}
}

// ViewSetCategory replaces the shop filter.
func ViewSetCategory(products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload categoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := sess.Nav.SetCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newViewPayload(products, snap))
	}
}

// ViewOpenQuickView sets the transient preview product without leaving
// the current screen.
func ViewOpenQuickView(products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload quickViewRequest
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

		responses.WriteSuccess(w, newViewPayload(products, sess.Nav.OpenQuickView(product)))
	}
}

// ViewCloseQuickView clears the preview product.
func ViewCloseQuickView(products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newViewPayload(products, sess.Nav.CloseQuickView()))
	}
}
