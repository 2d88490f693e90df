// Package pricing computes quotes for a selection of catalog items.
package pricing

import "github.com/shopspring/decimal"

// TaxRate is applied to the subtotal of every quote.
var TaxRate = decimal.RequireFromString("0.16")

// PricedItem is anything the client selected; only the price matters here.
type PricedItem struct {
	Price *decimal.Decimal `json:"price"`
}

type Quote struct {
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Calculate sums the prices (a missing price counts as zero) and applies TaxRate.
func Calculate(items []PricedItem) Quote {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Price != nil {
			subtotal = subtotal.Add(*item.Price)
		}
	}
	return Quote{
		Count:    len(items),
		Subtotal: subtotal,
		Tax:      subtotal.Mul(TaxRate),
		Total:    subtotal.Mul(decimal.NewFromInt(1).Add(TaxRate)),
	}
}
