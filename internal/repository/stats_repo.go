package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
)

type StatsRepository interface {
	CountsForOwner(ctx context.Context, accountID uuid.UUID) (*model.OwnerStats, error)
}

type statsRepo struct {
	db *gorm.DB
}

func NewStatsRepo(db *gorm.DB) StatsRepository {
	return &statsRepo{db}
}

// CountsForOwner counts the caller's subtree using the same ownership
// subqueries the listing queries use.
func (r *statsRepo) CountsForOwner(ctx context.Context, accountID uuid.UUID) (*model.OwnerStats, error) {
	db := r.db.WithContext(ctx)
	var stats model.OwnerStats

	if err := db.Model(&model.Store{}).Where("owner_account_id = ?", accountID).Count(&stats.Stores).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Branch{}).Where("store_id IN (?)", ownedStoreIDs(r.db, accountID)).Count(&stats.Branches).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Where("store_id IN (?)", ownedStoreIDs(r.db, accountID)).Count(&stats.Products).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.InventoryRecord{}).Where("product_id IN (?)", ownedProductIDs(r.db, accountID)).Count(&stats.InventoryRecords).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
