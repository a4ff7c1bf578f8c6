package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
)

// ResourceStore bridges the generic per-type orchestrator to the typed
// repositories. It is the only place that switches on resource type for
// writes; everything above it works off the descriptor table.
type ResourceStore struct {
	stores    StoreRepository
	branches  BranchRepository
	products  ProductRepository
	taxes     ProductTaxRepository
	inventory InventoryRepository
}

func NewResourceStore(
	stores StoreRepository,
	branches BranchRepository,
	products ProductRepository,
	taxes ProductTaxRepository,
	inventory InventoryRepository,
) *ResourceStore {
	return &ResourceStore{
		stores:    stores,
		branches:  branches,
		products:  products,
		taxes:     taxes,
		inventory: inventory,
	}
}

func (s *ResourceStore) Create(ctx context.Context, t authz.ResourceType, entity any) error {
	switch t {
	case authz.TypeStore:
		return s.stores.Create(ctx, entity.(*model.Store))
	case authz.TypeBranch:
		return s.branches.Create(ctx, entity.(*model.Branch))
	case authz.TypeProduct:
		return s.products.Create(ctx, entity.(*model.Product))
	case authz.TypeProductTax:
		return s.taxes.Create(ctx, entity.(*model.ProductTax))
	case authz.TypeInventoryRecord:
		return s.inventory.Create(ctx, entity.(*model.InventoryRecord))
	default:
		return fmt.Errorf("repository: unknown resource type %q", t)
	}
}

func (s *ResourceStore) Get(ctx context.Context, t authz.ResourceType, id uuid.UUID) (any, bool, error) {
	switch t {
	case authz.TypeStore:
		return deref(s.stores.FindByID(ctx, id))
	case authz.TypeBranch:
		return deref(s.branches.FindByID(ctx, id))
	case authz.TypeProduct:
		return deref(s.products.FindByID(ctx, id))
	case authz.TypeProductTax:
		return deref(s.taxes.FindByID(ctx, id))
	case authz.TypeInventoryRecord:
		return deref(s.inventory.FindByID(ctx, id))
	default:
		return nil, false, fmt.Errorf("repository: unknown resource type %q", t)
	}
}

func (s *ResourceStore) Update(ctx context.Context, t authz.ResourceType, id uuid.UUID, changes map[string]any) (any, bool, error) {
	switch t {
	case authz.TypeStore:
		return deref(s.stores.Update(ctx, id, changes))
	case authz.TypeBranch:
		return deref(s.branches.Update(ctx, id, changes))
	case authz.TypeProduct:
		return deref(s.products.Update(ctx, id, changes))
	case authz.TypeProductTax:
		return deref(s.taxes.Update(ctx, id, changes))
	case authz.TypeInventoryRecord:
		return deref(s.inventory.Update(ctx, id, changes))
	default:
		return nil, false, fmt.Errorf("repository: unknown resource type %q", t)
	}
}

func (s *ResourceStore) Delete(ctx context.Context, t authz.ResourceType, id uuid.UUID) (bool, error) {
	switch t {
	case authz.TypeStore:
		return s.stores.Delete(ctx, id)
	case authz.TypeBranch:
		return s.branches.Delete(ctx, id)
	case authz.TypeProduct:
		return s.products.Delete(ctx, id)
	case authz.TypeProductTax:
		return s.taxes.Delete(ctx, id)
	case authz.TypeInventoryRecord:
		return s.inventory.Delete(ctx, id)
	default:
		return false, fmt.Errorf("repository: unknown resource type %q", t)
	}
}

func (s *ResourceStore) List(ctx context.Context, t authz.ResourceType, filter authz.ScopedFilter) (any, error) {
	switch t {
	case authz.TypeStore:
		return s.stores.List(ctx, filter)
	case authz.TypeBranch:
		return s.branches.List(ctx, filter)
	case authz.TypeProduct:
		return s.products.List(ctx, filter)
	case authz.TypeProductTax:
		return s.taxes.List(ctx, filter)
	case authz.TypeInventoryRecord:
		return s.inventory.List(ctx, filter)
	default:
		return nil, fmt.Errorf("repository: unknown resource type %q", t)
	}
}

// deref erases the concrete pointer type while keeping an untyped nil out of
// the result when the row was not found.
func deref[T any](entity *T, found bool, err error) (any, bool, error) {
	if err != nil || !found {
		return nil, found, err
	}
	return entity, true, nil
}
