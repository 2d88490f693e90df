package model

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as JSON numbers, as clients send them.
	decimal.MarshalJSONWithoutQuotes = true
}

// MaxAmount is the exclusive upper bound of a stored price or total (NUMERIC(12, 2)).
var MaxAmount = decimal.New(1, 10)

// CheckAmount describes why d cannot be stored as a price or total, or returns "".
func CheckAmount(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return "must not be negative"
	case !d.Equal(d.Round(2)):
		return "must have at most 2 decimal places"
	case d.GreaterThanOrEqual(MaxAmount):
		return "must be less than " + MaxAmount.String()
	}
	return ""
}

// Item is a priced catalog entry.
type Item struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
}

// ItemSnapshot is the copy of an item stored with an appointment at booking time.
type ItemSnapshot struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
