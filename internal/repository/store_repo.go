package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
)

type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Store, bool, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Store, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter authz.ScopedFilter) ([]model.Store, error)
}

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepository {
	return &storeRepo{db}
}

// Create persists the store with its owner already bound; the owner is part
// of the same INSERT, so no ownerless store can ever exist.
func (r *storeRepo) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Store, bool, error) {
	var store model.Store
	err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &store, true, nil
}

func (r *storeRepo) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Store, bool, error) {
	var store model.Store
	err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := r.db.WithContext(ctx).Model(&store).Updates(changes).Error; err != nil {
		return nil, false, err
	}
	return &store, true, nil
}

func (r *storeRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Store{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *storeRepo) List(ctx context.Context, filter authz.ScopedFilter) ([]model.Store, error) {
	var stores []model.Store
	q := r.db.WithContext(ctx).Where("owner_account_id = ?", filter.Owner.AccountID)
	if conds := filter.Filter.Conditions(); len(conds) > 0 {
		q = q.Where(conds)
	}
	err := q.Find(&stores).Error
	return stores, err
}
