package grocery

import (
	"time"

	"github.com/shopspring/decimal"
)

type GroceryItem struct {
	Id       int
	Name     string
	Category string
	Price    decimal.Decimal
	Store    string
	// ProteinPer100g is invalid when the protein content of the item is unknown.
	ProteinPer100g decimal.NullDecimal
	LastUpdated    time.Time
	// UserId is the user who added the item, nil when unknown or the user was deleted.
	UserId *int
}

// ItemUpdate carries a partial update; nil fields are left unchanged.
type ItemUpdate struct {
	Name           *string
	Category       *string
	Price          *decimal.Decimal
	Store          *string
	ProteinPer100g *decimal.NullDecimal
	UserId         *int
}

func (u ItemUpdate) applyTo(item GroceryItem) GroceryItem {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.Price != nil {
		item.Price = *u.Price
	}
	if u.Store != nil {
		item.Store = *u.Store
	}
	if u.ProteinPer100g != nil {
		item.ProteinPer100g = *u.ProteinPer100g
	}
	if u.UserId != nil {
		userId := *u.UserId
		item.UserId = &userId
	}
	return item
}
