package models

import "github.com/shopspring/decimal"

// Item represents a single line item on the bill.
// Items are immutable once created; the ledger only ever appends them.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string

	// Name is what was bought (e.g., "Coffee", "Tea").
	Name string

	// Price is the item's price. Always greater than zero for items
	// admitted through the ledger.
	Price decimal.Decimal
}

// Tile is one person's share of the bill.
// Every tile of a split carries the same amount.
type Tile struct {
	// Person is the 1-based position of the tile.
	Person int

	// Amount is what this person pays.
	Amount decimal.Decimal
}
