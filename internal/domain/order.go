package domain

import (
	"time"
)

// DIYOrder is a custom guitar configuration. It is written once and never
// read back by the storefront.
type DIYOrder struct {
	ID            int     `gorm:"primaryKey;autoIncrement"`
	Type          string  `gorm:"size:60;not null"`
	NeckMaterial  string  `gorm:"column:n_material;size:60;not null"`
	BodyMaterial  string  `gorm:"column:b_material;size:60;not null"`
	Color         string  `gorm:"size:60;not null"`
	Engraving     int     `gorm:"not null;default:0"`
	EngravingText *string `gorm:"size:255"`
	CreatedAt     time.Time
}

func (DIYOrder) TableName() string { return "diy_orders" }

// Engraved reports whether the order asks for an engraving.
func (o DIYOrder) Engraved() bool { return o.Engraving == 1 }
