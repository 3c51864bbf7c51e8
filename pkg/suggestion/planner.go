package suggestion

import (
	"fmt"

	"github.com/budgetbite/budgetbite/pkg/grocery"
	"github.com/shopspring/decimal"
)

// Suggest filters items by meal type, ranks them, greedily selects within budget and totals the
// selection. It has no side effects: the same inputs always give the same Plan.
func Suggest(budget decimal.Decimal, mealType string, items []grocery.GroceryItem) (Plan, error) {
	if !budget.IsPositive() {
		return Plan{}, fmt.Errorf("%w: budget must be positive", ErrInvalidBudget)
	}
	matching := MatchCategory(items, mealType)
	if len(matching) == 0 {
		return Plan{}, fmt.Errorf("%w: %q", ErrNoMatchingItems, mealType)
	}
	selection, err := Select(budget, Rank(matching))
	if err != nil {
		return Plan{}, err
	}
	return Plan{Selection: selection, Stats: Aggregate(selection)}, nil
}
