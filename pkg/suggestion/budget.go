package suggestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const budgetPlaces = 2

// maxBudget is the largest amount a meal plan record can hold (NUMERIC(10,2)).
var maxBudget = decimal.RequireFromString("99999999.99")

// ParseBudget reads a budget given either as a JSON number or as a numeric JSON string.
// Every failure wraps ErrInvalidBudget.
func ParseBudget(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, fmt.Errorf("%w: budget is required", ErrInvalidBudget)
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", ErrInvalidBudget, err)
		}
		text = strings.TrimSpace(text)
	}

	budget, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidBudget, text)
	}
	return ValidateBudget(budget)
}

func ValidateBudget(budget decimal.Decimal) (decimal.Decimal, error) {
	if !budget.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: budget must be positive", ErrInvalidBudget)
	}
	if !budget.Equal(budget.Round(budgetPlaces)) {
		return decimal.Zero, fmt.Errorf("%w: budget must have at most %d decimal places", ErrInvalidBudget, budgetPlaces)
	}
	if budget.GreaterThan(maxBudget) {
		return decimal.Zero, fmt.Errorf("%w: budget must not exceed %s", ErrInvalidBudget, maxBudget.StringFixed(2))
	}
	return budget, nil
}
