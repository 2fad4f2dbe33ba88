// Package cart holds the in-memory order basket used when placing orders
// from the CLI. A Cart lives for one process and is not safe for concurrent
// use.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/tiffincrm/pkg/types"
)

// ErrUnavailable is returned when adding an item that cannot be ordered.
var ErrUnavailable = errors.New("menu item is not available")

// ErrEmpty is returned when building an order from an empty cart.
var ErrEmpty = errors.New("cart is empty")

// Line is one menu item and its quantity.
type Line struct {
	Item     types.MenuItem
	Quantity int
}

// Subtotal returns price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Item.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered list of lines keyed by menu item id.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

func (c *Cart) index(id int64) int {
	for i, l := range c.lines {
		if l.Item.ID == id {
			return i
		}
	}
	return -1
}

// Add puts one more of item in the cart, appending a new line when the item
// is not there yet.
func (c *Cart) Add(item types.MenuItem) error {
	if !item.Available {
		return ErrUnavailable
	}
	if i := c.index(item.ID); i >= 0 {
		c.lines[i].Quantity++
		return nil
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
	return nil
}

// Remove takes one of item id out of the cart and drops the line at zero.
func (c *Cart) Remove(id int64) {
	i := c.index(id)
	if i < 0 {
		return
	}
	if c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// SetQuantity sets the quantity of an item already in the cart. n <= 0
// removes the line.
func (c *Cart) SetQuantity(id int64, n int) {
	i := c.index(id)
	if i < 0 {
		return
	}
	if n <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
	c.lines[i].Quantity = n
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Quantity returns how many of item id are in the cart.
func (c *Cart) Quantity(id int64) int {
	if i := c.index(id); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total returns the sum of all line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// PlaceOrderRequest converts the cart into an order command.
func (c *Cart) PlaceOrderRequest(customerID int64, deliveryAddress string) (types.PlaceOrderRequest, error) {
	if c.Empty() {
		return types.PlaceOrderRequest{}, ErrEmpty
	}
	req := types.PlaceOrderRequest{CustomerID: customerID, DeliveryAddress: deliveryAddress}
	for _, l := range c.lines {
		req.Lines = append(req.Lines, types.OrderLine{MenuItemID: l.Item.ID, Quantity: l.Quantity})
	}
	return req, nil
}
