package controllers

import (
	"net/http"

	"github.com/neonclouds/neonclouds-backend/api/responses"
	"github.com/neonclouds/neonclouds-backend/api/validators"
	"github.com/neonclouds/neonclouds-backend/internal/catalog"
	"github.com/neonclouds/neonclouds-backend/internal/studio"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

const maxStudioPromptLen = 2000

type studioCatalogSourceRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type studioGenerateRequest struct {
	Prompt string `json:"prompt" validate:"required"`
}

type studioGeneratePayload struct {
	Studio   studio.Snapshot `json:"studio"`
	NoResult bool            `json:"no_result"`
	Message  string          `json:"message,omitempty"`
}

// StudioFetch returns the remix workspace state.
func StudioFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sess.Studio.Snapshot())
	}
}

// StudioUploadSource takes a multipart image upload as the remix
// source. Setting a new source clears any previous result.
func StudioUploadSource(svc studio.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "studio service unavailable"))
			return
		}

		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, _, err := r.FormFile("image")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "image file is required"))
			return
		}
		defer file.Close()

		snap, err := svc.SetSourceFromUpload(r.Context(), sess.Studio, file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// StudioCatalogSource loads a catalog product's primary image as the
// remix source. The image is fetched server side; a fetch failure
// leaves the current source untouched.
func StudioCatalogSource(svc studio.Service, products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "studio service unavailable"))
			return
		}

		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload studioCatalogSourceRequest
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

		snap, err := svc.SetSourceFromCatalog(r.Context(), sess.Studio, product.Image)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// StudioGenerate runs one remix. The collaborator returning nothing is
// a normal outcome, reported with no_result rather than an error; the
// source image and prompt survive so the shopper can retry. Overlapping
// generates are rejected while one is running.
func StudioGenerate(svc studio.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "studio service unavailable"))
			return
		}

		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload studioGenerateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		prompt := validators.SanitizeString(payload.Prompt, maxStudioPromptLen)
		snap, ok, err := svc.Generate(r.Context(), sess.Studio, prompt)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := studioGeneratePayload{Studio: snap, NoResult: !ok}
		if !ok {
			out.Message = "Failed to generate image. Please try again."
		}
		responses.WriteSuccess(w, out)
	}
}
