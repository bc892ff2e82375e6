// Package cart holds the in-memory shopping cart: an insertion-ordered
// collection of product lines, at most one line per product. Carts live only
// for the lifetime of a shopping session and are never persisted.
package cart

import (
	"github.com/google/uuid"

	"github.com/cartoolsbd/storefront/internal/models"
)

// Line is one product-quantity pair. Product is a snapshot captured at add
// time; a later catalog edit does not change lines already in a cart.
type Line struct {
	Product  models.Product `json:"product"`
	Quantity uint           `json:"quantity"`
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add appends a line with quantity 1, or increments the quantity of the
// existing line for the same product.
func (c *Cart) Add(p models.Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
}

// Remove drops the line for productID. Removing an absent product is a
// no-op; the returned bool reports whether anything was removed.
func (c *Cart) Remove(productID uuid.UUID) bool {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Deduct subtracts qty from the line for productID, dropping the line when
// nothing is left. Quantity beyond what the line holds is ignored, and an
// absent product is a no-op.
func (c *Cart) Deduct(productID uuid.UUID, qty uint) {
	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		if c.lines[i].Quantity <= qty {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity -= qty
		}
		return
	}
}

// Total recomputes the cart total from the current lines on every call.
// It is never cached, so it cannot drift after a Remove.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Product.Price * float64(l.Quantity)
	}
	return total
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}
