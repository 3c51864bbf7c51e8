package meal_plan

import (
	"time"

	"github.com/shopspring/decimal"
)

// MealPlan records one successful suggestion request. Records are never modified afterwards,
// except that the user reference is cleared when the user is deleted.
type MealPlan struct {
	Id        int
	UserId    *int
	Budget    decimal.Decimal
	MealType  string
	CreatedAt time.Time
}
