package cart

import (
	"github.com/shopspring/decimal"

	"github.com/neonclouds/neonclouds-backend/internal/catalog"
)

var (
	freeShippingAbove = decimal.RequireFromString("50")
	flatShipping      = decimal.RequireFromString("10")
)

// Line is one product's quantity entry within the ledger. The product
// is snapshotted at add time.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Totals is the derived money view of a ledger.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// Ledger tracks cart lines in insertion order, at most one per product
// id. It is not safe for concurrent use; the owning session serializes
// access.
type Ledger struct {
	lines []Line
	index map[string]int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{index: make(map[string]int)}
}

// Add inserts a line with quantity 1, or increments the existing line
// for the same product id. It always succeeds.
func (l *Ledger) Add(product catalog.Product) {
	if idx, ok := l.index[product.ID]; ok {
		l.lines[idx].Quantity++
		return
	}
	l.index[product.ID] = len(l.lines)
	l.lines = append(l.lines, Line{Product: product, Quantity: 1})
}

// Remove deletes the line for the given product id. Removing an absent
// line is a no-op, not an error.
func (l *Ledger) Remove(productID string) {
	idx, ok := l.index[productID]
	if !ok {
		return
	}
	l.lines = append(l.lines[:idx], l.lines[idx+1:]...)
	delete(l.index, productID)
	for i := idx; i < len(l.lines); i++ {
		l.index[l.lines[i].Product.ID] = i
	}
}

// UpdateQuantity adjusts a line's quantity by delta, clamped so it
// never drops below 1. Absent lines are a no-op; removal has its own
// path.
func (l *Ledger) UpdateQuantity(productID string, delta int) {
	idx, ok := l.index[productID]
	if !ok {
		return
	}
	next := l.lines[idx].Quantity + delta
	if next < 1 {
		next = 1
	}
	l.lines[idx].Quantity = next
}

// Lines returns the cart lines in insertion order.
func (l *Ledger) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of distinct lines.
func (l *Ledger) Len() int {
	return len(l.lines)
}

// Subtotal sums price times quantity over all lines.
func (l *Ledger) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range l.lines {
		subtotal = subtotal.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return subtotal
}

// ItemCount sums all quantities, badge semantics rather than line count.
func (l *Ledger) ItemCount() int {
	count := 0
	for _, line := range l.lines {
		count += line.Quantity
	}
	return count
}

// Totals derives the money view. Shipping is free strictly above 50,
// otherwise a flat 10; an empty cart still carries the flat rate.
func (l *Ledger) Totals() Totals {
	subtotal := l.Subtotal()
	shipping := ShippingFor(subtotal)
	return Totals{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
		ItemCount: l.ItemCount(),
	}
}

// ShippingFor returns the shipping charge for a subtotal. The free
// threshold is strict: exactly 50.00 still ships at the flat rate.
func ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingAbove) {
		return decimal.Zero
	}
	return flatShipping
}
