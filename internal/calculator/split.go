package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
)

// Total returns the sum of all item prices.
// An empty bill totals zero.
func Total(items []models.Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}

// SplitAmount divides the total equally among people.
// Returns zero when there is nobody to split between.
func SplitAmount(total decimal.Decimal, people int) decimal.Decimal {
	if people <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(people)))
}

// Tiles produces one tile per person, each carrying the same split amount.
func Tiles(split decimal.Decimal, people int) []models.Tile {
	if people <= 0 {
		return nil
	}

	tiles := make([]models.Tile, people)
	for i := range tiles {
		tiles[i] = models.Tile{
			Person: i + 1,
			Amount: split,
		}
	}
	return tiles
}
