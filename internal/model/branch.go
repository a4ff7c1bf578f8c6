package model

import "github.com/google/uuid"

// Branch is a physical location belonging to exactly one store.
type Branch struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address string `gorm:"type:varchar(255)" json:"address"`

	StoreID uuid.UUID `gorm:"type:uuid;index;not null" json:"store_id"`
	Store   *Store    `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}
