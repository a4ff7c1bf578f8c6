package model

import "github.com/google/uuid"

// ProductTax is a tax rule attached to exactly one product. The rate is stored
// in basis points (825 = 8.25%).
type ProductTax struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Rate int    `gorm:"not null" json:"rate" validate:"gte=0"`

	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
