// Package cart holds the client-side shopping cart. The backend owns pricing
// truth; the totals computed here follow the same rules so checkout previews
// match what the order endpoint returns.
package cart

import (
	"github.com/google/uuid"

	"github.com/ashwinpillay/voltcart/pkg/client"
	"github.com/ashwinpillay/voltcart/pkg/domain"
)

// Shipping rule mirrored from the storefront: flat rate, waived above the
// free-shipping threshold.
const (
	flatShipping          = 25.0
	freeShippingThreshold = 500.0
)

// Line is one product entry in the cart.
type Line struct {
	ID        uuid.UUID // stable identity for cursor/removal, independent of position
	ProductID string
	Name      string
	Price     float64
	Qty       int
	MaxQty    int // stock cap at the time the line was added
}

// Cart is a mutable in-memory cart. Not safe for concurrent use; the TUI
// event loop is the only caller.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts qty units of p in the cart. Adding a product already present bumps
// the existing line instead of creating a duplicate. Quantities are clamped
// to the product's stock.
func (c *Cart) Add(p domain.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Qty = clampQty(c.lines[i].Qty+qty, c.lines[i].MaxQty)
			return
		}
	}
	c.lines = append(c.lines, Line{
		ID:        uuid.New(),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Qty:       clampQty(qty, p.CountInStock),
		MaxQty:    p.CountInStock,
	})
}

// Remove deletes the line with the given ID. Unknown IDs are a no-op.
func (c *Cart) Remove(lineID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQty sets a line's quantity, clamped to its stock cap. A quantity below
// one removes the line.
func (c *Cart) SetQty(lineID uuid.UUID, qty int) {
	if qty < 1 {
		c.Remove(lineID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines[i].Qty = clampQty(qty, c.lines[i].MaxQty)
			return
		}
	}
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// ItemCount returns the total units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Qty
	}
	return n
}

// Subtotal returns the pre-shipping total.
func (c *Cart) Subtotal() float64 {
	total := 0.0
	for _, l := range c.lines {
		total += l.Price * float64(l.Qty)
	}
	return total
}

// Shipping returns the shipping charge for the current subtotal.
func (c *Cart) Shipping() float64 {
	if c.Empty() || c.Subtotal() >= freeShippingThreshold {
		return 0
	}
	return flatShipping
}

// Total returns subtotal plus shipping.
func (c *Cart) Total() float64 {
	return c.Subtotal() + c.Shipping()
}

// Clear empties the cart. Called after a successful checkout.
func (c *Cart) Clear() {
	c.lines = nil
}

// OrderRequest converts the cart into the checkout payload.
func (c *Cart) OrderRequest() client.CreateOrderRequest {
	items := make([]domain.OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Qty:       l.Qty,
			Price:     l.Price,
		})
	}
	return client.CreateOrderRequest{
		Items:         items,
		ItemsPrice:    c.Subtotal(),
		ShippingPrice: c.Shipping(),
		TotalPrice:    c.Total(),
	}
}

func clampQty(qty, maxQty int) int {
	if maxQty > 0 && qty > maxQty {
		return maxQty
	}
	return qty
}
