package suggestion

import "github.com/shopspring/decimal"

const statsPlaces = 2

// Aggregate derives the totals of a selection, each rounded to two decimal places.
// Protein per currency unit is zero when nothing was spent.
func Aggregate(selection Selection) Stats {
	spent := selection.Budget.Sub(selection.Remaining)
	totalProtein := decimal.Zero
	for _, item := range selection.Items {
		totalProtein = totalProtein.Add(item.protein())
	}

	proteinPerUnit := decimal.Zero
	if spent.IsPositive() {
		proteinPerUnit = totalProtein.Div(spent)
	}

	return Stats{
		TotalSpent:             spent.Round(statsPlaces),
		RemainingBudget:        selection.Remaining.Round(statsPlaces),
		ProteinPerCurrencyUnit: proteinPerUnit.Round(statsPlaces),
		TotalProtein:           totalProtein.Round(statsPlaces),
	}
}
