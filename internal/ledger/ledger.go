// Package ledger holds the items and person count for one bill.
//
// A Ledger is an immutable value: every update returns a new Ledger and
// leaves the receiver untouched, so a caller can keep any earlier snapshot.
package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/calculator"
	"github.com/mmynk/quicksplit/internal/models"
)

// minPeople is the floor for the person count.
const minPeople = 1

// Ledger is the aggregate of items and person count for one bill session.
// The zero value is not usable; start from New.
type Ledger struct {
	items  []models.Item
	people int
}

// New returns an empty ledger split by one person.
func New() Ledger {
	return Ledger{people: minPeople}
}

// AddItem appends an item with a fresh ID.
// An empty name or a price that is not strictly positive is ignored and
// the ledger is returned unchanged.
func (l Ledger) AddItem(name string, price decimal.Decimal) Ledger {
	if name == "" || !price.IsPositive() {
		return l
	}

	items := make([]models.Item, len(l.items), len(l.items)+1)
	copy(items, l.items)
	l.items = append(items, models.Item{
		ID:    uuid.New().String(),
		Name:  name,
		Price: price,
	})
	return l
}

// IncrementPeople adds one person. There is no upper limit.
func (l Ledger) IncrementPeople() Ledger {
	l.people++
	return l
}

// DecrementPeople removes one person, never going below one.
func (l Ledger) DecrementPeople() Ledger {
	if l.people <= minPeople {
		return l
	}
	l.people--
	return l
}

// SetPeople sets the person count directly.
// Counts below one are ignored.
func (l Ledger) SetPeople(n int) Ledger {
	if n < minPeople {
		return l
	}
	l.people = n
	return l
}

// Items returns the items in insertion order.
// The returned slice is a copy.
func (l Ledger) Items() []models.Item {
	items := make([]models.Item, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of items.
func (l Ledger) Len() int {
	return len(l.items)
}

// People returns the number of people splitting the bill.
func (l Ledger) People() int {
	return l.people
}

// Total returns the sum of all item prices.
func (l Ledger) Total() decimal.Decimal {
	return calculator.Total(l.items)
}

// SplitAmount returns what each person pays.
func (l Ledger) SplitAmount() decimal.Decimal {
	return calculator.SplitAmount(l.Total(), l.people)
}

// Tiles returns one tile per person with the split amount.
func (l Ledger) Tiles() []models.Tile {
	return calculator.Tiles(l.SplitAmount(), l.people)
}
