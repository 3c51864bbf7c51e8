package suggestion

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Select walks the ranked list once and accepts an item when it fits the remaining budget and
// no item from the same store was accepted before. Skipped items are never revisited.
func Select(budget decimal.Decimal, ranked []RankedItem) (Selection, error) {
	if !budget.IsPositive() {
		return Selection{}, fmt.Errorf("%w: budget must be positive", ErrInvalidBudget)
	}

	remaining := budget
	stores := make(map[string]struct{})
	accepted := make([]RankedItem, 0)
	for _, candidate := range ranked {
		if candidate.Item.Price.GreaterThan(remaining) {
			continue
		}
		if _, taken := stores[candidate.Item.Store]; taken {
			continue
		}
		stores[candidate.Item.Store] = struct{}{}
		accepted = append(accepted, candidate)
		remaining = remaining.Sub(candidate.Item.Price)
	}

	if len(accepted) == 0 {
		return Selection{}, ErrInsufficientBudget
	}
	return Selection{Budget: budget, Remaining: remaining, Items: accepted}, nil
}
