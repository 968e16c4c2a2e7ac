package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/neonclouds/neonclouds-backend/internal/catalog"
)

func product(id, price string) catalog.Product {
	return catalog.Product{ID: id, Name: "p" + id, Price: decimal.RequireFromString(price)}
}

func TestAddTwiceIncrementsSingleLine(t *testing.T) {
	l := NewLedger()
	p := product("1", "24.99")
	l.Add(p)
	l.Add(p)

	lines := l.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	l := NewLedger()
	l.Add(product("1", "24.99"))
	l.Add(product("2", "18.50"))
	l.Add(product("1", "24.99"))

	lines := l.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if lines[0].Product.ID != "1" || lines[1].Product.ID != "2" {
		t.Fatalf("unexpected order %s, %s", lines[0].Product.ID, lines[1].Product.ID)
	}
}

func TestUpdateQuantityClampsAtOne(t *testing.T) {
	l := NewLedger()
	l.Add(product("1", "10.00"))

	l.UpdateQuantity("1", -100)
	if got := l.Lines()[0].Quantity; got != 1 {
		t.Fatalf("quantity must not drop below 1, got %d", got)
	}

	l.UpdateQuantity("1", 3)
	if got := l.Lines()[0].Quantity; got != 4 {
		t.Fatalf("expected quantity 4, got %d", got)
	}

	// Absent id is a no-op.
	l.UpdateQuantity("missing", 5)
	if l.Len() != 1 {
		t.Fatalf("no-op update must not create lines, got %d", l.Len())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	l := NewLedger()
	l.Add(product("1", "10.00"))
	l.Add(product("2", "20.00"))

	l.Remove("1")
	l.Remove("1")

	lines := l.Lines()
	if len(lines) != 1 || lines[0].Product.ID != "2" {
		t.Fatalf("unexpected lines after remove: %+v", lines)
	}

	// Index must stay coherent after compaction.
	l.Add(product("3", "5.00"))
	l.Remove("2")
	if got := l.Lines(); len(got) != 1 || got[0].Product.ID != "3" {
		t.Fatalf("unexpected lines after second remove: %+v", got)
	}
}

func TestEmptyLedgerTotals(t *testing.T) {
	totals := NewLedger().Totals()
	if !totals.Subtotal.IsZero() {
		t.Fatalf("expected zero subtotal, got %s", totals.Subtotal)
	}
	if !totals.Shipping.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected flat shipping on empty cart, got %s", totals.Shipping)
	}
	if !totals.Total.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected total 10, got %s", totals.Total)
	}
	if totals.ItemCount != 0 {
		t.Fatalf("expected zero items, got %d", totals.ItemCount)
	}
}

func TestShippingThresholdIsStrict(t *testing.T) {
	tests := []struct {
		subtotal string
		shipping string
	}{
		{subtotal: "0", shipping: "10"},
		{subtotal: "49.99", shipping: "10"},
		{subtotal: "50.00", shipping: "10"},
		{subtotal: "50.01", shipping: "0"},
		{subtotal: "68.48", shipping: "0"},
	}
	for _, tt := range tests {
		got := ShippingFor(decimal.RequireFromString(tt.subtotal))
		if !got.Equal(decimal.RequireFromString(tt.shipping)) {
			t.Fatalf("subtotal %s: expected shipping %s got %s", tt.subtotal, tt.shipping, got)
		}
	}
}

func TestTotalsScenario(t *testing.T) {
	l := NewLedger()
	one := product("1", "24.99")
	two := product("2", "18.50")
	l.Add(one)
	l.Add(two)
	l.Add(one)

	totals := l.Totals()
	if !totals.Subtotal.Equal(decimal.RequireFromString("68.48")) {
		t.Fatalf("expected subtotal 68.48, got %s", totals.Subtotal)
	}
	if !totals.Shipping.IsZero() {
		t.Fatalf("expected free shipping, got %s", totals.Shipping)
	}
	if !totals.Total.Equal(decimal.RequireFromString("68.48")) {
		t.Fatalf("expected total 68.48, got %s", totals.Total)
	}
	if totals.ItemCount != 3 {
		t.Fatalf("expected 3 items, got %d", totals.ItemCount)
	}
}
