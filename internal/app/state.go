// Package app holds the state of the bill-splitting screen and the pure
// functions that update and render it.
//
// State is passed in and returned; nothing here is shared or observed.
package app

import (
	"github.com/mmynk/quicksplit/internal/entry"
	"github.com/mmynk/quicksplit/internal/ledger"
)

// State is everything the screen shows: the ledger plus the two input
// fields the user is typing into.
type State struct {
	Ledger     ledger.Ledger
	NameField  string
	PriceField string
}

// New returns the state of a freshly opened screen.
func New() State {
	return State{Ledger: ledger.New()}
}

// SetName replaces the item name field.
func SetName(s State, name string) State {
	s.NameField = name
	return s
}

// SetPrice replaces the item price field.
func SetPrice(s State, price string) State {
	s.PriceField = price
	return s
}

// Submit tries to turn the input fields into an item.
// On accept the item is appended and both fields are cleared. On reject
// the state is returned as is, fields included.
func Submit(s State, v *entry.Validator) (State, bool) {
	price, ok := v.Validate(s.NameField, s.PriceField)
	if !ok {
		return s, false
	}

	s.Ledger = s.Ledger.AddItem(s.NameField, price)
	s.NameField = ""
	s.PriceField = ""
	return s, true
}

// IncrementPeople adds a person to the split.
func IncrementPeople(s State) State {
	s.Ledger = s.Ledger.IncrementPeople()
	return s
}

// DecrementPeople removes a person from the split, stopping at one.
func DecrementPeople(s State) State {
	s.Ledger = s.Ledger.DecrementPeople()
	return s
}

// SetPeople sets the person count directly; counts below one are ignored.
func SetPeople(s State, n int) State {
	s.Ledger = s.Ledger.SetPeople(n)
	return s
}
