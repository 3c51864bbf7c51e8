package suggestion

import (
	"github.com/budgetbite/budgetbite/pkg/grocery"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(id int, name, category, price, store, protein string) grocery.GroceryItem {
	it := grocery.GroceryItem{
		Id:       id,
		Name:     name,
		Category: category,
		Price:    dec(price),
		Store:    store,
	}
	if protein != "" {
		it.ProteinPer100g = decimal.NewNullDecimal(dec(protein))
	}
	return it
}

func sampleCatalog() []grocery.GroceryItem {
	return []grocery.GroceryItem{
		item(1, "Chicken Breast", "high-protein", "5.99", "Walmart", "31.0"),
		item(2, "Eggs", "high-protein", "3.49", "Costco", "13.0"),
		item(3, "Greek Yogurt", "high-protein", "2.99", "Whole Foods", "10.0"),
	}
}

func names(items []RankedItem) []string {
	result := make([]string, 0, len(items))
	for _, it := range items {
		result = append(result, it.Item.Name)
	}
	return result
}
