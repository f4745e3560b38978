// Package cart holds the client-local shopping cart: a mapping from product
// identifier to desired quantity. The cart is ephemeral by design — it is
// never persisted and does not survive a restart. The remote service is the
// sole authority on pricing and stock; the cart only tracks intent.
package cart

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tienda-mobile/storectl/internal/domain/product"
)

// Line is a single cart entry as submitted to the order service.
type Line struct {
	ProductID string
	Quantity  int
}

// Cart maps product IDs to quantities. Every stored quantity is strictly
// positive: decrementing to zero deletes the entry instead of storing it.
//
// Cart is not safe for concurrent use. All mutation happens on the single
// goroutine driving the command loop.
type Cart struct {
	qty map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{qty: make(map[string]int)}
}

// Add increments the quantity for the given product, starting at 1 for a
// product not yet in the cart. No upper bound is enforced locally; any
// limit is the remote service's call.
func (c *Cart) Add(productID string) {
	c.qty[productID]++
}

// Remove decrements the quantity for the given product. When the quantity
// would drop to zero or below, the entry is deleted entirely. Removing a
// product that is not in the cart is a no-op.
func (c *Cart) Remove(productID string) {
	q := c.qty[productID] - 1
	if q <= 0 {
		delete(c.qty, productID)
		return
	}
	c.qty[productID] = q
}

// Quantity reports how many units of the given product are in the cart,
// zero when absent.
func (c *Cart) Quantity(productID string) int {
	return c.qty[productID]
}

// Lines returns the cart contents as submission-ready lines, sorted by
// product ID. The order only matters for stable rendering.
func (c *Cart) Lines() []Line {
	lines := make([]Line, 0, len(c.qty))
	for id, q := range c.qty {
		lines = append(lines, Line{ProductID: id, Quantity: q})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, q := range c.qty {
		n += q
	}
	return n
}

// Total derives the cart total from the given catalog snapshot. Products
// missing from the catalog contribute zero. The total is recomputed on
// every call rather than cached, so it can never drift from the cart.
func (c *Cart) Total(catalog product.Catalog) decimal.Decimal {
	total := decimal.Zero
	for id, q := range c.qty {
		total = total.Add(catalog.PriceOf(id).Mul(decimal.NewFromInt(int64(q))))
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.qty) == 0
}

// Clear drops every line. Called after a successful order submission and
// on logout.
func (c *Cart) Clear() {
	c.qty = make(map[string]int)
}
