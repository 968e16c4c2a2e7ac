package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/neonclouds/neonclouds-backend/api/responses"
	"github.com/neonclouds/neonclouds-backend/internal/catalog"
	"github.com/neonclouds/neonclouds-backend/internal/navigation"
	"github.com/neonclouds/neonclouds-backend/pkg/enums"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

// CatalogList returns the product list, optionally narrowed by the
// category query parameter. "all" and an absent parameter both mean no
// filter.
func CatalogList(products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("category"))
		if raw != "" && raw != navigation.CategoryAll {
			if _, err := enums.ParseProductCategory(raw); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category filter"))
				return
			}
		}

		list := navigation.VisibleProducts(products, raw)
		responses.WriteSuccess(w, map[string]any{
			"products": list,
			"count":    len(list),
		})
	}
}

// CatalogGet returns one product plus its deduplicated gallery set.
func CatalogGet(products *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		product, ok := products.Get(productID)
		if !ok {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"product": product,
			"gallery": catalog.GalleryImages(product),
		})
	}
}

// CatalogCategories lists the category filter values, "all" first.
func CatalogCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := []string{navigation.CategoryAll}
		for _, c := range enums.ProductCategories() {
			categories = append(categories, c.String())
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}
