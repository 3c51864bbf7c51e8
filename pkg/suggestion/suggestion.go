package suggestion

import (
	"errors"

	"github.com/budgetbite/budgetbite/pkg/grocery"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidBudget      = errors.New("invalid budget")
	ErrUnknownUser        = errors.New("user does not exist")
	ErrNoMatchingItems    = errors.New("no grocery items match the requested meal type")
	ErrInsufficientBudget = errors.New("no affordable item found for the budget")
)

// RankedItem is a catalog item together with its value density (protein per 100g / price).
type RankedItem struct {
	Item  grocery.GroceryItem
	Value decimal.Decimal
}

// protein returns the protein content used in totals; unknown protein counts as zero.
func (r RankedItem) protein() decimal.Decimal {
	if r.Item.ProteinPer100g.Valid {
		return r.Item.ProteinPer100g.Decimal
	}
	return decimal.Zero
}

// Selection is the outcome of one greedy pass over a ranked list.
type Selection struct {
	Budget    decimal.Decimal
	Remaining decimal.Decimal
	Items     []RankedItem
}

type Stats struct {
	TotalSpent             decimal.Decimal
	RemainingBudget        decimal.Decimal
	ProteinPerCurrencyUnit decimal.Decimal
	TotalProtein           decimal.Decimal
}

// Plan is the pure result of a suggestion run: what to buy and what it adds up to.
type Plan struct {
	Selection Selection
	Stats     Stats
}

type Request struct {
	Budget   decimal.Decimal
	MealType string
	// UserId is optional; when nil the user of the request context is used, if any.
	UserId *int
}

type Result struct {
	Plan       Plan
	MealPlanId *int
	// Warning is set when the suggestion succeeded but could not be recorded.
	Warning string
}
