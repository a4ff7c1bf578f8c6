package model

import "github.com/google/uuid"

// Product is a catalog item belonging to exactly one store.
type Product struct {
	BaseModel
	SKU   string `gorm:"type:varchar(50);index" json:"sku"`
	Name  string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Unit  string `gorm:"type:varchar(20)" json:"unit"`
	Price int64  `gorm:"default:0" json:"price"`

	StoreID uuid.UUID `gorm:"type:uuid;index;not null" json:"store_id"`
	Store   *Store    `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}
