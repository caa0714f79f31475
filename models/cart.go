package models

import "github.com/shopspring/decimal"

// CartLine is one product's chosen quantity within the cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns quantity * unit price.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSummary is derived from the cart on demand and never cached.
type CartSummary struct {
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	TotalItemCount int             `json:"totalItemCount"`
	Lines          []CartLine      `json:"lines"` // insertion order
}
