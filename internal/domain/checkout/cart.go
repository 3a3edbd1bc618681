package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdv/terminal/internal/domain/shared/valueobject"
)

// CartLine represents a single product line in the cart.
// Invariant: LineTotal == UnitPrice * Quantity and Quantity > 0;
// a line whose quantity reaches zero is removed, never stored.
type CartLine struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   valueobject.Money
	Quantity    int64
	LineTotal   valueobject.Money
}

// recalculate recomputes the line total from unit price and quantity
func (l *CartLine) recalculate() {
	l.LineTotal = l.UnitPrice.MultiplyByInt(l.Quantity)
}

// Cart is the in-memory order composition for the active checkout session.
// It holds at most one line per product, in insertion order. All operations
// are synchronous and never touch the network; the cart is mutated only by
// explicit operator actions, never by a background refresh.
type Cart struct {
	lines []CartLine
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{lines: make([]CartLine, 0)}
}

// AddProduct adds one unit of the product to the cart. If a line for the
// product already exists its quantity is incremented, otherwise a new line
// with quantity 1 is inserted. Products without a strictly positive price
// are ignored: incomplete catalog data must not produce zero-value lines.
// Returns the affected line, or nil when the call was a no-op.
func (c *Cart) AddProduct(productID uuid.UUID, productName string, unitPrice valueobject.Money) *CartLine {
	if !unitPrice.IsPositive() {
		return nil
	}

	for idx := range c.lines {
		if c.lines[idx].ProductID == productID {
			c.lines[idx].Quantity++
			c.lines[idx].recalculate()
			return &c.lines[idx]
		}
	}

	line := CartLine{
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    1,
	}
	line.recalculate()
	c.lines = append(c.lines, line)
	return &c.lines[len(c.lines)-1]
}

// ChangeQuantity applies a quantity delta to the product's line. When the
// resulting quantity drops to zero or below the line is removed entirely.
// Unknown products are a no-op.
func (c *Cart) ChangeQuantity(productID uuid.UUID, delta int64) {
	for idx := range c.lines {
		if c.lines[idx].ProductID != productID {
			continue
		}
		newQty := c.lines[idx].Quantity + delta
		if newQty <= 0 {
			c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
			return
		}
		c.lines[idx].Quantity = newQty
		c.lines[idx].recalculate()
		return
	}
}

// RemoveLine removes the product's line unconditionally; no-op if absent
func (c *Cart) RemoveLine(productID uuid.UUID) {
	for idx := range c.lines {
		if c.lines[idx].ProductID == productID {
			c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
			return
		}
	}
}

// Total returns the sum of all line totals, recomputed on every read
func (c *Cart) Total() valueobject.Money {
	total := valueobject.ZeroMZN()
	for _, line := range c.lines {
		total = total.MustAdd(line.LineTotal)
	}
	return total
}

// Clear empties the cart. Called after a confirmed checkout success or an
// explicit mode switch, never by background work.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for the product, or nil if absent
func (c *Cart) Line(productID uuid.UUID) *CartLine {
	for idx := range c.lines {
		if c.lines[idx].ProductID == productID {
			line := c.lines[idx]
			return &line
		}
	}
	return nil
}

// Len returns the number of lines in the cart
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(decimal.NewFromInt(line.Quantity))
	}
	return total
}
