package navigation

import (
	"sync"

	"github.com/neonclouds/neonclouds-backend/internal/catalog"
	"github.com/neonclouds/neonclouds-backend/pkg/enums"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
)

// The "all" sentinel sits outside the category enumeration; it means no
// filter is applied.
const CategoryAll = "all"

// Snapshot is the externally visible navigation state. SelectedProduct
// is only populated while the current view is PRODUCT_DETAIL, so a
// stale selection never leaks to clients.
type Snapshot struct {
	View            enums.View       `json:"view"`
	SelectedProduct *catalog.Product `json:"selected_product,omitempty"`
	QuickView       *catalog.Product `json:"quick_view,omitempty"`
	ActiveCategory  string           `json:"active_category"`
	ScrollReset     bool             `json:"scroll_reset"`
	HeroReset       bool             `json:"hero_reset"`
}

// State is one session's view router: the current screen, the detail
// selection, the quick-view selection, and the shop category filter.
// Methods are safe for concurrent use.
type State struct {
	mu sync.Mutex

	view     enums.View
	selected *catalog.Product
	quick    *catalog.Product
	category string
}

// NewState starts at the home screen with no filter.
func NewState() *State {
	return &State{view: enums.ViewHome, category: CategoryAll}
}

// Navigate switches the current view. The detail selection is kept
// (matching the storefront's behavior) but is only exposed while the
// view is PRODUCT_DETAIL. Navigating to PRODUCT_DETAIL directly without
// a selection is rejected: the detail screen requires a product.
func (s *State) Navigate(view enums.View) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if view == enums.ViewProductDetail && s.selected == nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeStateConflict, "product detail requires a selected product")
	}
	s.view = view
	return s.snapshotLocked(true), nil
}

// SelectProduct sets the detail subject and moves to PRODUCT_DETAIL.
func (s *State) SelectProduct(product catalog.Product) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := product
	s.selected = &p
	s.view = enums.ViewProductDetail
	return s.snapshotLocked(true)
}

// SelectedProduct returns the detail subject regardless of the current
// view; callers that honor the rendering contract use Snapshot instead.
func (s *State) SelectedProduct() (catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return catalog.Product{}, false
	}
	return *s.selected, true
}

// View returns the current screen.
func (s *State) View() enums.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetCategory replaces the shop filter with "all" or a valid category.
func (s *State) SetCategory(raw string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw != CategoryAll {
		if _, err := enums.ParseProductCategory(raw); err != nil {
			return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category filter")
		}
	}
	s.category = raw
	return s.snapshotLocked(false), nil
}

// Category returns the active shop filter.
func (s *State) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// OpenQuickView sets the transient preview selection; the current view
// is untouched.
func (s *State) OpenQuickView(product catalog.Product) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := product
	s.quick = &p
	return s.snapshotLocked(false)
}

// CloseQuickView clears the preview selection.
func (s *State) CloseQuickView() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quick = nil
	return s.snapshotLocked(false)
}

// Snapshot returns the current state without side effects.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(false)
}

func (s *State) snapshotLocked(scrolled bool) Snapshot {
	snap := Snapshot{
		View:           s.view,
		QuickView:      s.quick,
		ActiveCategory: s.category,
	}
	if s.view == enums.ViewProductDetail {
		snap.SelectedProduct = s.selected
	}
	if scrolled {
		if s.view == enums.ViewHome {
			snap.HeroReset = true
		} else {
			snap.ScrollReset = true
		}
	}
	return snap
}

// VisibleProducts applies the active filter to the catalog: the full
// list for "all", otherwise the order-preserving category subsequence.
func VisibleProducts(c *catalog.Catalog, activeCategory string) []catalog.Product {
	if activeCategory == CategoryAll || activeCategory == "" {
		return c.List()
	}
	category, err := enums.ParseProductCategory(activeCategory)
	if err != nil {
		return nil
	}
	return c.ListByCategory(category)
}
