// Package cart implements an insertion-ordered shopping cart keyed by
// product ID. Availability is validated against live stock at add time only;
// subtotal and clear act on cart state alone.
package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xenking/shopfront/internal/domain/catalog"
)

// NotInCartError indicates a removal was attempted for a product that has no
// line in the cart.
type NotInCartError struct {
	Name string
}

func (e *NotInCartError) Error() string {
	return fmt.Sprintf("%s not in cart", e.Name)
}

// UnavailableError indicates an add would exceed the product's current stock
// (or requested a non-positive quantity).
type UnavailableError struct {
	Name      string
	Requested int
	Available int
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("not enough %s: requested %d, %d in stock", e.Name, e.Requested, e.Available)
}

// RemoveQuantityError indicates a removal quantity was non-positive or
// exceeded the line's quantity.
type RemoveQuantityError struct {
	Name      string
	Requested int
	InCart    int
}

func (e *RemoveQuantityError) Error() string {
	return fmt.Sprintf("cannot remove %d %s; only %d in cart", e.Requested, e.Name, e.InCart)
}

// Line is a cart entry: a product reference and a positive quantity.
type Line struct {
	Product  *catalog.Product
	Quantity int
}

// Total returns price × quantity for this line.
func (l Line) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds one line per product, preserving first-add insertion order.
type Cart struct {
	lines []*Line
	index map[string]*Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{index: make(map[string]*Line)}
}

// Add puts qty units of p into the cart, merging into an existing line when
// present. The add fails, leaving the cart untouched, when qty alone is not
// available or when the merged line quantity would exceed current stock.
func (c *Cart) Add(p *catalog.Product, qty int) error {
	if !p.Available(qty) {
		return &UnavailableError{Name: p.Name, Requested: qty, Available: p.Stock()}
	}

	if line, ok := c.index[p.ID]; ok {
		merged := line.Quantity + qty
		if !p.Available(merged) {
			return &UnavailableError{Name: p.Name, Requested: merged, Available: p.Stock()}
		}
		line.Quantity = merged
		return nil
	}

	line := &Line{Product: p, Quantity: qty}
	c.lines = append(c.lines, line)
	c.index[p.ID] = line
	return nil
}

// Remove takes qty units of p out of the cart. Removing the full line
// quantity deletes the line; a partial removal reduces it. It fails when the
// product is absent or qty is non-positive or exceeds the line quantity.
func (c *Cart) Remove(p *catalog.Product, qty int) error {
	line, ok := c.index[p.ID]
	if !ok {
		return &NotInCartError{Name: p.Name}
	}
	if qty <= 0 || qty > line.Quantity {
		return &RemoveQuantityError{Name: p.Name, Requested: qty, InCart: line.Quantity}
	}

	if qty == line.Quantity {
		delete(c.index, p.ID)
		for i, l := range c.lines {
			if l == line {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
				break
			}
		}
		return nil
	}

	line.Quantity -= qty
	return nil
}

// Items returns the cart lines in first-add order. The returned slice is a
// copy; the lines themselves reference live cart state.
func (c *Cart) Items() []Line {
	items := make([]Line, len(c.lines))
	for i, l := range c.lines {
		items[i] = *l
	}
	return items
}

// Subtotal returns the sum of line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]*Line)
}
