// Package entry gates the admission of a typed item into the ledger.
package entry

import (
	"log/slog"

	"github.com/shopspring/decimal"
)

// PriceParser reads user-typed price text.
type PriceParser interface {
	Parse(text string) (decimal.Decimal, error)
}

// Validator decides whether a typed name/price pair may become an item.
type Validator struct {
	parser PriceParser
}

// NewValidator creates a Validator that reads prices with parser.
func NewValidator(parser PriceParser) *Validator {
	return &Validator{parser: parser}
}

// Validate accepts the pair when the name is non-empty and the price is
// a number strictly greater than zero. Price text that does not parse is
// read as zero, so it is rejected the same way an explicit "0" is.
// On accept the parsed price is returned.
func (v *Validator) Validate(name, priceText string) (decimal.Decimal, bool) {
	price := v.price(priceText)
	if name == "" || !price.GreaterThan(decimal.Zero) {
		slog.Debug("Item entry rejected", "name", name, "price_text", priceText)
		return decimal.Zero, false
	}
	return price, true
}

func (v *Validator) price(text string) decimal.Decimal {
	price, err := v.parser.Parse(text)
	if err != nil {
		return decimal.Zero
	}
	return price
}
