package model

import "github.com/google/uuid"

// InventoryRecord is a stock record linking one product and one branch. The
// referenced product and branch must belong to the same store; that rule is
// checked at creation time, not by the schema.
type InventoryRecord struct {
	BaseModel
	Quantity int `gorm:"default:0" json:"quantity"`

	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	BranchID  uuid.UUID `gorm:"type:uuid;index;not null" json:"branch_id"`
	Branch    *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}
