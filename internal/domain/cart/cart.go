package cart

import (
	"github.com/shopspring/decimal"

	"github.com/example/pos-terminal/internal/member"
)

// LineItem is one scanned product in a cart. UnitPrice is snapshotted from
// the catalog at first scan; later catalog price changes do not reach open
// carts.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Pricing is derived from cart state on every read, never stored.
type Pricing struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Snapshot is a point-in-time copy of a cart handed to notifiers and API
// responses. Mutating a snapshot has no effect on the live cart.
type Snapshot struct {
	TerminalID string         `json:"terminal_id"`
	Items      []LineItem     `json:"items"`
	Member     *member.Member `json:"member,omitempty"`
	Pricing    Pricing        `json:"pricing"`
}

// memberDiscountRate is the flat discount applied whenever a member is
// attached to the cart.
var memberDiscountRate = decimal.NewFromFloat(0.05)

// Price computes subtotal, discount and total for a set of line items.
// Decimal arithmetic with a single rounding step per figure keeps repeated
// recomputation bit-stable for identical input.
func Price(items []LineItem, hasMember bool) Pricing {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	subtotal = subtotal.Round(2)

	discount := decimal.Zero
	if hasMember {
		discount = subtotal.Mul(memberDiscountRate).Round(2)
	}

	return Pricing{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}
