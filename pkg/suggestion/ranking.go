package suggestion

import (
	"slices"
	"strings"

	"github.com/budgetbite/budgetbite/pkg/grocery"
	"github.com/shopspring/decimal"
)

// MatchCategory keeps the items whose category contains mealType, ignoring case.
func MatchCategory(items []grocery.GroceryItem, mealType string) []grocery.GroceryItem {
	needle := strings.ToLower(mealType)
	matching := make([]grocery.GroceryItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Category), needle) {
			matching = append(matching, item)
		}
	}
	return matching
}

// Rank orders items by protein_per_100g / price, best first. Items without a positive price
// cannot be valued and are left out; items with unknown protein are valued at zero. Equal values
// keep their input order.
func Rank(items []grocery.GroceryItem) []RankedItem {
	ranked := make([]RankedItem, 0, len(items))
	for _, item := range items {
		if !item.Price.IsPositive() {
			continue
		}
		value := decimal.Zero
		if item.ProteinPer100g.Valid {
			value = item.ProteinPer100g.Decimal.Div(item.Price)
		}
		ranked = append(ranked, RankedItem{Item: item, Value: value})
	}
	slices.SortStableFunc(ranked, func(a, b RankedItem) int {
		return b.Value.Cmp(a.Value)
	})
	return ranked
}
