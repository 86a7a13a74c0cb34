package app

import (
	"github.com/shopspring/decimal"
)

// Formatter renders amounts for display.
type Formatter interface {
	Format(amount decimal.Decimal) string
}

// ItemRow is one entered item as displayed.
type ItemRow struct {
	ID    string
	Name  string
	Price string
}

// View is the rendered screen.
type View struct {
	Total       string
	Items       []ItemRow
	People      int
	SplitAmount string
	Tiles       []string
	NameField   string
	PriceField  string
}

// Render produces the view of a state.
func Render(s State, f Formatter) View {
	items := s.Ledger.Items()
	rows := make([]ItemRow, len(items))
	for i, item := range items {
		rows[i] = ItemRow{
			ID:    item.ID,
			Name:  item.Name,
			Price: f.Format(item.Price),
		}
	}

	tiles := s.Ledger.Tiles()
	tileText := make([]string, len(tiles))
	for i, tile := range tiles {
		tileText[i] = f.Format(tile.Amount)
	}

	return View{
		Total:       f.Format(s.Ledger.Total()),
		Items:       rows,
		People:      s.Ledger.People(),
		SplitAmount: f.Format(s.Ledger.SplitAmount()),
		Tiles:       tileText,
		NameField:   s.NameField,
		PriceField:  s.PriceField,
	}
}
