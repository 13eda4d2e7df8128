package model

import "github.com/shopspring/decimal"

// Product represents a product in the catalogue.
// Optional attributes are omitted from JSON when unset.
type Product struct {
	ID          int64            `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description *string          `json:"description,omitempty" db:"description"`
	Price       *decimal.Decimal `json:"price,omitempty" db:"price"`
	Category    *string          `json:"category,omitempty" db:"category"`
}

// ProductCreate is the payload accepted when creating a product.
// Price limits match the NUMERIC(12,2) column.
type ProductCreate struct {
	Name        string           `json:"name" validate:"required,max=255"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0,lte=9999999999.99,decimals=2"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=100"`
}

// ProductUpdate is the payload accepted when updating a product.
// Nil fields leave the stored value untouched.
type ProductUpdate struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,gte=0,lte=9999999999.99,decimals=2"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=100"`
}

// IsEmpty reports whether the update carries no fields.
func (u *ProductUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Price == nil && u.Category == nil
}
