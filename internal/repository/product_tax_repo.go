package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
)

type ProductTaxRepository interface {
	Create(ctx context.Context, tax *model.ProductTax) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductTax, bool, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.ProductTax, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter authz.ScopedFilter) ([]model.ProductTax, error)
}

type productTaxRepo struct {
	db *gorm.DB
}

func NewProductTaxRepo(db *gorm.DB) ProductTaxRepository {
	return &productTaxRepo{db}
}

func (r *productTaxRepo) Create(ctx context.Context, tax *model.ProductTax) error {
	return r.db.WithContext(ctx).Create(tax).Error
}

func (r *productTaxRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductTax, bool, error) {
	var tax model.ProductTax
	err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &tax, true, nil
}

func (r *productTaxRepo) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.ProductTax, bool, error) {
	var tax model.ProductTax
	err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := r.db.WithContext(ctx).Model(&tax).Updates(changes).Error; err != nil {
		return nil, false, err
	}
	return &tax, true, nil
}

func (r *productTaxRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.ProductTax{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *productTaxRepo) List(ctx context.Context, filter authz.ScopedFilter) ([]model.ProductTax, error) {
	var taxes []model.ProductTax
	q := r.db.WithContext(ctx).Where("product_id IN (?)", ownedProductIDs(r.db, filter.Owner.AccountID))
	if conds := filter.Filter.Conditions(); len(conds) > 0 {
		q = q.Where(conds)
	}
	err := q.Find(&taxes).Error
	return taxes, err
}
