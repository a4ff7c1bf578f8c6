package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
)

// ownedStoreIDs builds the subquery selecting every store id owned by the
// account. Listing queries conjoin it with the caller's own conditions.
func ownedStoreIDs(db *gorm.DB, accountID uuid.UUID) *gorm.DB {
	return db.Model(&model.Store{}).Select("id").Where("owner_account_id = ?", accountID)
}

// ownedProductIDs selects every product id under the account's stores.
func ownedProductIDs(db *gorm.DB, accountID uuid.UUID) *gorm.DB {
	return db.Model(&model.Product{}).Select("id").Where("store_id IN (?)", ownedStoreIDs(db, accountID))
}
