package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the root tenant entity. Every branch, product, tax rule, and
// inventory record traces back to exactly one store, and the store's owner is
// the effective owner of that whole subtree.
type Store struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Currency string `gorm:"type:varchar(8)" json:"currency"`

	// Bound once at creation, immutable afterwards.
	OwnerAccountID uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_account_id"`
	Owner          *Account  `gorm:"foreignKey:OwnerAccountID" json:"owner,omitempty"`
}

// BeforeUpdate keeps the owner binding out of every UPDATE statement.
func (s *Store) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.Omit("owner_account_id")
	return nil
}
