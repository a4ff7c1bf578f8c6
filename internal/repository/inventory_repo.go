package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
)

type InventoryRepository interface {
	Create(ctx context.Context, record *model.InventoryRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryRecord, bool, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.InventoryRecord, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter authz.ScopedFilter) ([]model.InventoryRecord, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

func (r *inventoryRepo) Create(ctx context.Context, record *model.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *inventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryRecord, bool, error) {
	var record model.InventoryRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &record, true, nil
}

func (r *inventoryRepo) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.InventoryRecord, bool, error) {
	var record model.InventoryRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := r.db.WithContext(ctx).Model(&record).Updates(changes).Error; err != nil {
		return nil, false, err
	}
	return &record, true, nil
}

func (r *inventoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.InventoryRecord{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

// List restricts to records whose product belongs to the caller. Ownership is
// resolved via the product only; the branch link is validated at creation.
func (r *inventoryRepo) List(ctx context.Context, filter authz.ScopedFilter) ([]model.InventoryRecord, error) {
	var records []model.InventoryRecord
	q := r.db.WithContext(ctx).Where("product_id IN (?)", ownedProductIDs(r.db, filter.Owner.AccountID))
	if conds := filter.Filter.Conditions(); len(conds) > 0 {
		q = q.Where(conds)
	}
	err := q.Find(&records).Error
	return records, err
}
