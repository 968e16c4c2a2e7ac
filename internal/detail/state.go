package detail

import (
	"sync"

	"github.com/neonclouds/neonclouds-backend/internal/catalog"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
)

const (
	minRotation = -180
	maxRotation = 180
)

// Snapshot is the externally visible gallery state for the detail view.
type Snapshot struct {
	ProductID   string   `json:"product_id"`
	ActiveImage string   `json:"active_image"`
	Rotation    int      `json:"rotation"`
	Gallery     []string `json:"gallery"`
}

// State tracks the image gallery and manual rotation for the product
// currently shown on the detail screen. Switching products resets both;
// stale state never leaks across products. Methods are safe for
// concurrent use.
type State struct {
	mu sync.Mutex

	productID   string
	activeImage string
	rotation    int
	gallery     []string
}

// NewState returns an empty detail state; SetProduct arms it.
func NewState() *State {
	return &State{}
}

// SetProduct makes the given product the detail subject. A different
// product resets the active image to its primary image and the rotation
// to zero; re-selecting the same product keeps the current state.
func (s *State) SetProduct(p catalog.Product) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productID != p.ID {
		s.productID = p.ID
		s.activeImage = p.Image
		s.rotation = 0
		s.gallery = catalog.GalleryImages(p)
	}
	return s.snapshotLocked()
}

// SelectImage switches the active image. URLs outside the product's
// deduplicated gallery set are rejected.
func (s *State) SelectImage(url string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productID == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no product on the detail screen")
	}
	for _, candidate := range s.gallery {
		if candidate == url {
			s.activeImage = url
			return s.snapshotLocked(), nil
		}
	}
	return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "image is not part of the product gallery")
}

// SetRotation sets the manual rotation, clamped to [-180, 180] degrees.
func (s *State) SetRotation(degrees int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productID == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no product on the detail screen")
	}
	if degrees < minRotation {
		degrees = minRotation
	}
	if degrees > maxRotation {
		degrees = maxRotation
	}
	s.rotation = degrees
	return s.snapshotLocked(), nil
}

// Snapshot returns the current state without side effects.
func (s *State) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productID == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no product on the detail screen")
	}
	return s.snapshotLocked(), nil
}

func (s *State) snapshotLocked() Snapshot {
	gallery := make([]string, len(s.gallery))
	copy(gallery, s.gallery)
	return Snapshot{
		ProductID:   s.productID,
		ActiveImage: s.activeImage,
		Rotation:    s.rotation,
		Gallery:     gallery,
	}
}
