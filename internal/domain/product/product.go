package product

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist in the
// local catalog snapshot.
var ErrNotFound = errors.New("product not found")

// Product is a catalog item available for purchase. The catalog is owned by
// the remote storefront service; the client never mutates products and only
// ever sees the active (purchasable) subset.
type Product struct {
	ID    string          `json:"_id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// Catalog is an ordered snapshot of the purchasable products, in the order
// the server returned them.
type Catalog []Product

// ByID finds a product by its identifier.
func (c Catalog) ByID(id string) (Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// PriceOf returns the price of the identified product, or zero when the
// product is not part of this catalog snapshot. The zero default keeps
// total derivation well-defined while the cart and catalog drift apart.
func (c Catalog) PriceOf(id string) decimal.Decimal {
	if p, ok := c.ByID(id); ok {
		return p.Price
	}
	return decimal.Zero
}
