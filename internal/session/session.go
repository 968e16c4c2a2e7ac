package session

import (
	"sync"
	"time"

	"github.com/neonclouds/neonclouds-backend/internal/assistant"
	"github.com/neonclouds/neonclouds-backend/internal/cart"
	"github.com/neonclouds/neonclouds-backend/internal/catalog"
	"github.com/neonclouds/neonclouds-backend/internal/detail"
	"github.com/neonclouds/neonclouds-backend/internal/navigation"
	"github.com/neonclouds/neonclouds-backend/internal/studio"
)

// Session is the owning context for one anonymous shopper: the cart
// ledger plus the navigation, detail, chat, and studio state the
// storefront UI would otherwise hold in component memory.
type Session struct {
	ID string

	Nav    *navigation.State
	Detail *detail.State
	Chat   *assistant.Transcript
	Studio *studio.State

	mu       sync.Mutex
	cart     *cart.Ledger
	lastSeen time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:       id,
		Nav:      navigation.NewState(),
		Detail:   detail.NewState(),
		Chat:     assistant.NewTranscript(),
		Studio:   studio.NewState(),
		cart:     cart.NewLedger(),
		lastSeen: now,
	}
}

// CartView is what the cart drawer renders.
type CartView struct {
	Lines  []cart.Line `json:"lines"`
	Totals cart.Totals `json:"totals"`
}

// CartAdd puts one unit of the product into the ledger.
func (s *Session) CartAdd(product catalog.Product) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Add(product)
	return s.cartViewLocked()
}

// CartRemove drops the product's line; absent lines are a no-op.
func (s *Session) CartRemove(productID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(productID)
	return s.cartViewLocked()
}

// CartUpdateQuantity adjusts a line by delta, clamped at 1.
func (s *Session) CartUpdateQuantity(productID string, delta int) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(productID, delta)
	return s.cartViewLocked()
}

// Cart returns the current drawer view.
func (s *Session) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked()
}

func (s *Session) cartViewLocked() CartView {
	return CartView{
		Lines:  s.cart.Lines(),
		Totals: s.cart.Totals(),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) seen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
