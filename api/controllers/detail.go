package controllers

import (
	"net/http"

	"github.com/neonclouds/neonclouds-backend/api/responses"
	"github.com/neonclouds/neonclouds-backend/api/validators"
	"github.com/neonclouds/neonclouds-backend/internal/session"
	"github.com/neonclouds/neonclouds-backend/pkg/enums"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

type selectImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type rotationRequest struct {
	Degrees int `json:"degrees"`
}

// detailSessionFromRequest resolves the session and enforces that the
// shopper is actually on the detail screen. A stale selection kept
// behind another view must not be readable or mutable.
func detailSessionFromRequest(r *http.Request) (*session.Session, error) {
	sess, err := sessionFromRequest(r)
	if err != nil {
		return nil, err
	}
	if sess.Nav.View() != enums.ViewProductDetail {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product detail is not the current view")
	}
	return sess, nil
}

// DetailFetch returns the gallery state for the product on the detail
// screen. Outside PRODUCT_DETAIL, or without a selected product, there
// is nothing to show and the request is a state conflict.
func DetailFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := detailSessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := sess.Detail.Snapshot()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// DetailSelectImage switches the gallery's active image. URLs outside
// the product's deduplicated image set are rejected.
func DetailSelectImage(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := detailSessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectImageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := sess.Detail.SelectImage(payload.URL)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// DetailSetRotation applies a manual rotation to the active image,
// clamped to half a turn in either direction.
func DetailSetRotation(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := detailSessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload rotationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := sess.Detail.SetRotation(payload.Degrees)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}
