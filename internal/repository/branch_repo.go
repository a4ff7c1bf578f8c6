package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
)

type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Branch, bool, error)
	Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Branch, bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, filter authz.ScopedFilter) ([]model.Branch, error)
}

type branchRepo struct {
	db *gorm.DB
}

func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db}
}

func (r *branchRepo) Create(ctx context.Context, branch *model.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

func (r *branchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Branch, bool, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &branch, true, nil
}

func (r *branchRepo) Update(ctx context.Context, id uuid.UUID, changes map[string]any) (*model.Branch, bool, error) {
	var branch model.Branch
	err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if err := r.db.WithContext(ctx).Model(&branch).Updates(changes).Error; err != nil {
		return nil, false, err
	}
	return &branch, true, nil
}

func (r *branchRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Branch{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *branchRepo) List(ctx context.Context, filter authz.ScopedFilter) ([]model.Branch, error) {
	var branches []model.Branch
	q := r.db.WithContext(ctx).Where("store_id IN (?)", ownedStoreIDs(r.db, filter.Owner.AccountID))
	if conds := filter.Filter.Conditions(); len(conds) > 0 {
		q = q.Where(conds)
	}
	err := q.Find(&branches).Error
	return branches, err
}
