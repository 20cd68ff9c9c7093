package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The storefront only ever reads it.
type Product struct {
	ID          int             `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	Category    string          `gorm:"size:60;index" json:"category"`
	Name        string          `gorm:"size:120;not null" json:"name"`
	Color       string          `gorm:"size:60" json:"color"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Img         string          `gorm:"size:255" json:"img"`
	Description string          `gorm:"type:text" json:"description"`
}

func (Product) TableName() string { return "products" }

// DisplayName is how the storefront labels a product: color first, then name.
func (p Product) DisplayName() string {
	if p.Color == "" {
		return p.Name
	}
	return p.Color + " " + p.Name
}

// CategoryAll lists every product regardless of category.
const CategoryAll = "all"

func init() {
	// prices travel as JSON numbers, the way the catalog has always served them
	decimal.MarshalJSONWithoutQuotes = true
}
