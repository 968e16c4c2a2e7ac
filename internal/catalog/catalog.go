package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/neonclouds/neonclouds-backend/pkg/enums"
)

// Product is one immutable catalog record.
type Product struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       decimal.Decimal       `json:"price"`
	Category    enums.ProductCategory `json:"category"`
	Rating      float64               `json:"rating"`
	Image       string                `json:"image"`
	Gallery     []string              `json:"gallery,omitempty"`
	Puffs       *int                  `json:"puffs,omitempty"`
	Flavor      *string               `json:"flavor,omitempty"`
}

// Catalog holds the static product list for the process lifetime.
// Nothing mutates it after construction.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds the catalog from the seeded product set.
func New() *Catalog {
	return newFrom(defaultProducts())
}

func newFrom(products []Product) *Catalog {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &Catalog{products: products, byID: byID}
}

// List returns every product in insertion order.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get returns the product for the given id.
func (c *Catalog) Get(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// ListByCategory returns the insertion-order subsequence for one category.
func (c *Catalog) ListByCategory(category enums.ProductCategory) []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Len reports the catalog size.
func (c *Catalog) Len() int {
	return len(c.products)
}

// GalleryImages returns the product's viewable image set: primary image
// first, then the gallery with duplicates removed, order preserved.
func GalleryImages(p Product) []string {
	seen := make(map[string]struct{}, len(p.Gallery)+1)
	out := make([]string, 0, len(p.Gallery)+1)
	for _, url := range append([]string{p.Image}, p.Gallery...) {
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}
	return out
}
