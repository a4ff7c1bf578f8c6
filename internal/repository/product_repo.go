package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, bool, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Product, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter authz.ScopedFilter) ([]model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, bool, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &product, true, nil
}

func (r *productRepo) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Product, bool, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := r.db.WithContext(ctx).Model(&product).Updates(changes).Error; err != nil {
		return nil, false, err
	}
	return &product, true, nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *productRepo) List(ctx context.Context, filter authz.ScopedFilter) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Where("store_id IN (?)", ownedStoreIDs(r.db, filter.Owner.AccountID))
	if conds := filter.Filter.Conditions(); len(conds) > 0 {
		q = q.Where(conds)
	}
	err := q.Find(&products).Error
	return products, err
}
