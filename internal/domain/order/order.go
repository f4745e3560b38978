package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a server-created record of a submitted purchase. The server
// assigns the identity, timestamp, and total; the client only reads orders
// back and never mutates them.
type Order struct {
	ID        string          `json:"_id"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

// Item is a single line of an order, keyed by product ID.
type Item struct {
	Product string `json:"product"`
	Qty     int    `json:"qty"`
}

// ItemCount is the total number of units across all lines.
func (o Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Qty
	}
	return n
}
