package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/apperr"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/model"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/ws"
)

// memBackend implements both authz.Lookup and Persistence over maps, so the
// orchestrator under test runs against one consistent in-memory world.
type memBackend struct {
	mu        sync.Mutex
	stores    map[uuid.UUID]*model.Store
	branches  map[uuid.UUID]*model.Branch
	products  map[uuid.UUID]*model.Product
	taxes     map[uuid.UUID]*model.ProductTax
	inventory map[uuid.UUID]*model.InventoryRecord
}

func newMemBackend() *memBackend {
	return &memBackend{
		stores:    make(map[uuid.UUID]*model.Store),
		branches:  make(map[uuid.UUID]*model.Branch),
		products:  make(map[uuid.UUID]*model.Product),
		taxes:     make(map[uuid.UUID]*model.ProductTax),
		inventory: make(map[uuid.UUID]*model.InventoryRecord),
	}
}

func (b *memBackend) Find(_ context.Context, t authz.ResourceType, id uuid.UUID) (authz.Record, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch t {
	case authz.TypeStore:
		if s, ok := b.stores[id]; ok {
			return authz.Record{ID: s.ID, OwnerID: s.OwnerAccountID}, true, nil
		}
	case authz.TypeBranch:
		if br, ok := b.branches[id]; ok {
			return authz.Record{ID: br.ID, Parents: map[authz.ResourceType]uuid.UUID{authz.TypeStore: br.StoreID}}, true, nil
		}
	case authz.TypeProduct:
		if p, ok := b.products[id]; ok {
			return authz.Record{ID: p.ID, Parents: map[authz.ResourceType]uuid.UUID{authz.TypeStore: p.StoreID}}, true, nil
		}
	case authz.TypeProductTax:
		if tax, ok := b.taxes[id]; ok {
			return authz.Record{ID: tax.ID, Parents: map[authz.ResourceType]uuid.UUID{authz.TypeProduct: tax.ProductID}}, true, nil
		}
	case authz.TypeInventoryRecord:
		if rec, ok := b.inventory[id]; ok {
			return authz.Record{ID: rec.ID, Parents: map[authz.ResourceType]uuid.UUID{
				authz.TypeProduct: rec.ProductID,
				authz.TypeBranch:  rec.BranchID,
			}}, true, nil
		}
	}
	return authz.Record{}, false, nil
}

func (b *memBackend) Create(_ context.Context, t authz.ResourceType, entity any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch t {
	case authz.TypeStore:
		s := entity.(*model.Store)
		ensureID(&s.BaseModel)
		b.stores[s.ID] = s
	case authz.TypeBranch:
		br := entity.(*model.Branch)
		ensureID(&br.BaseModel)
		b.branches[br.ID] = br
	case authz.TypeProduct:
		p := entity.(*model.Product)
		ensureID(&p.BaseModel)
		b.products[p.ID] = p
	case authz.TypeProductTax:
		tax := entity.(*model.ProductTax)
		ensureID(&tax.BaseModel)
		b.taxes[tax.ID] = tax
	case authz.TypeInventoryRecord:
		rec := entity.(*model.InventoryRecord)
		ensureID(&rec.BaseModel)
		b.inventory[rec.ID] = rec
	default:
		return fmt.Errorf("unknown type %q", t)
	}
	return nil
}

func ensureID(base *model.BaseModel) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
}

func (b *memBackend) Get(_ context.Context, t authz.ResourceType, id uuid.UUID) (any, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch t {
	case authz.TypeStore:
		if s, ok := b.stores[id]; ok {
			return s, true, nil
		}
	case authz.TypeBranch:
		if br, ok := b.branches[id]; ok {
			return br, true, nil
		}
	case authz.TypeProduct:
		if p, ok := b.products[id]; ok {
			return p, true, nil
		}
	case authz.TypeProductTax:
		if tax, ok := b.taxes[id]; ok {
			return tax, true, nil
		}
	case authz.TypeInventoryRecord:
		if rec, ok := b.inventory[id]; ok {
			return rec, true, nil
		}
	}
	return nil, false, nil
}

func (b *memBackend) Update(_ context.Context, t authz.ResourceType, id uuid.UUID, changes map[string]any) (any, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch t {
	case authz.TypeProduct:
		p, ok := b.products[id]
		if !ok {
			return nil, false, nil
		}
		if name, ok := changes["name"].(string); ok {
			p.Name = name
		}
		if price, ok := changes["price"].(int64); ok {
			p.Price = price
		}
		return p, true, nil
	case authz.TypeStore:
		s, ok := b.stores[id]
		if !ok {
			return nil, false, nil
		}
		if name, ok := changes["name"].(string); ok {
			s.Name = name
		}
		return s, true, nil
	case authz.TypeInventoryRecord:
		rec, ok := b.inventory[id]
		if !ok {
			return nil, false, nil
		}
		if qty, ok := changes["quantity"].(int); ok {
			rec.Quantity = qty
		}
		return rec, true, nil
	}
	return nil, false, nil
}

func (b *memBackend) Delete(_ context.Context, t authz.ResourceType, id uuid.UUID) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch t {
	case authz.TypeStore:
		if _, ok := b.stores[id]; ok {
			delete(b.stores, id)
			return true, nil
		}
	case authz.TypeBranch:
		if _, ok := b.branches[id]; ok {
			delete(b.branches, id)
			return true, nil
		}
	case authz.TypeProduct:
		if _, ok := b.products[id]; ok {
			delete(b.products, id)
			return true, nil
		}
	}
	return false, nil
}

func (b *memBackend) List(_ context.Context, t authz.ResourceType, filter authz.ScopedFilter) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	conds := filter.Filter.Conditions()
	owner := filter.Owner.AccountID

	switch t {
	case authz.TypeStore:
		out := []model.Store{}
		for _, s := range b.stores {
			if s.OwnerAccountID == owner && matchName(conds, s.Name) {
				out = append(out, *s)
			}
		}
		return out, nil
	case authz.TypeProduct:
		out := []model.Product{}
		for _, p := range b.products {
			if b.storeOwner(p.StoreID) == owner && matchName(conds, p.Name) {
				out = append(out, *p)
			}
		}
		return out, nil
	case authz.TypeInventoryRecord:
		out := []model.InventoryRecord{}
		for _, rec := range b.inventory {
			p, ok := b.products[rec.ProductID]
			if ok && b.storeOwner(p.StoreID) == owner {
				out = append(out, *rec)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("list not supported for %q", t)
}

func (b *memBackend) storeOwner(storeID uuid.UUID) uuid.UUID {
	if s, ok := b.stores[storeID]; ok {
		return s.OwnerAccountID
	}
	return uuid.Nil
}

func matchName(conds map[string]any, name string) bool {
	want, ok := conds["name"]
	if !ok {
		return true
	}
	return want == name
}

// fixture wires the orchestrator over a memBackend with two tenants.
type fixture struct {
	svc      ResourceService
	backend  *memBackend
	accountA uuid.UUID
	accountB uuid.UUID
	storeA   *model.Store
	storeB   *model.Store
	branchA  *model.Branch
	branchB  *model.Branch
	productA *model.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := newMemBackend()
	f := &fixture{
		backend:  backend,
		accountA: uuid.New(),
		accountB: uuid.New(),
		svc:      NewResourceService(authz.NewGate(authz.NewResolver(backend)), backend, nil),
	}
	ctx := context.Background()

	f.storeA = &model.Store{Name: "Tienda A", OwnerAccountID: f.accountA}
	require.NoError(t, f.svc.Create(ctx, f.accountA, authz.TypeStore, f.storeA, nil))
	f.storeB = &model.Store{Name: "Tienda B", OwnerAccountID: f.accountB}
	require.NoError(t, f.svc.Create(ctx, f.accountB, authz.TypeStore, f.storeB, nil))

	f.branchA = &model.Branch{Name: "Sucursal A", StoreID: f.storeA.ID}
	require.NoError(t, f.svc.Create(ctx, f.accountA, authz.TypeBranch, f.branchA,
		map[authz.ResourceType]uuid.UUID{authz.TypeStore: f.storeA.ID}))
	f.branchB = &model.Branch{Name: "Sucursal B", StoreID: f.storeB.ID}
	require.NoError(t, f.svc.Create(ctx, f.accountB, authz.TypeBranch, f.branchB,
		map[authz.ResourceType]uuid.UUID{authz.TypeStore: f.storeB.ID}))

	f.productA = &model.Product{Name: "Cafe", StoreID: f.storeA.ID}
	require.NoError(t, f.svc.Create(ctx, f.accountA, authz.TypeProduct, f.productA,
		map[authz.ResourceType]uuid.UUID{authz.TypeStore: f.storeA.ID}))

	return f
}

func TestListIsScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// B has plenty of products; A must never see them.
	for i := 0; i < 3; i++ {
		p := &model.Product{Name: fmt.Sprintf("Ajeno %d", i), StoreID: f.storeB.ID}
		require.NoError(t, f.svc.Create(ctx, f.accountB, authz.TypeProduct, p,
			map[authz.ResourceType]uuid.UUID{authz.TypeStore: f.storeB.ID}))
	}

	result, err := f.svc.List(ctx, f.accountA, authz.TypeProduct, authz.Filter{})
	require.NoError(t, err)
	products := result.([]model.Product)
	require.Len(t, products, 1)
	require.Equal(t, f.productA.ID, products[0].ID)
}

func TestListCallerFilterNarrowsButNeverWidens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := &model.Product{Name: "Te", StoreID: f.storeA.ID}
	require.NoError(t, f.svc.Create(ctx, f.accountA, authz.TypeProduct, other,
		map[authz.ResourceType]uuid.UUID{authz.TypeStore: f.storeA.ID}))

	result, err := f.svc.List(ctx, f.accountA, authz.TypeProduct, authz.NewFilter(map[string]any{"name": "Te"}))
	require.NoError(t, err)
	products := result.([]model.Product)
	require.Len(t, products, 1)
	require.Equal(t, other.ID, products[0].ID)
}

func TestListRejectsOwnershipFilterOverride(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.List(context.Background(), f.accountA, authz.TypeProduct,
		authz.NewFilter(map[string]any{"owner_account_id": f.accountB.String()}))
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateProductUnderForeignStoreForbidden(t *testing.T) {
	f := newFixture(t)

	p := &model.Product{Name: "Intruso", StoreID: f.storeA.ID}
	err := f.svc.Create(context.Background(), f.accountB, authz.TypeProduct, p,
		map[authz.ResourceType]uuid.UUID{authz.TypeStore: f.storeA.ID})
	require.ErrorIs(t, err, apperr.ErrAuthorization)
}

func TestCreateInventorySameStoreAllowedCrossStoreForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec := &model.InventoryRecord{Quantity: 5, ProductID: f.productA.ID, BranchID: f.branchA.ID}
	require.NoError(t, f.svc.Create(ctx, f.accountA, authz.TypeInventoryRecord, rec,
		map[authz.ResourceType]uuid.UUID{authz.TypeProduct: f.productA.ID, authz.TypeBranch: f.branchA.ID}))

	// Same owner on the product, but the branch hangs off another store.
	cross := &model.InventoryRecord{Quantity: 5, ProductID: f.productA.ID, BranchID: f.branchB.ID}
	err := f.svc.Create(ctx, f.accountA, authz.TypeInventoryRecord, cross,
		map[authz.ResourceType]uuid.UUID{authz.TypeProduct: f.productA.ID, authz.TypeBranch: f.branchB.ID})
	require.ErrorIs(t, err, apperr.ErrAuthorization)
}

func TestGetMissingResourceIsNotFoundForEveryCaller(t *testing.T) {
	f := newFixture(t)
	ghost := uuid.New()

	for _, caller := range []uuid.UUID{f.accountA, f.accountB} {
		_, err := f.svc.Get(context.Background(), caller, authz.TypeStore, ghost)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	}
}

func TestGetForeignResourceForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), f.accountB, authz.TypeProduct, f.productA.ID)
	require.ErrorIs(t, err, apperr.ErrAuthorization)
}

func TestUpdateOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	updated, err := f.svc.Update(ctx, f.accountA, authz.TypeProduct, f.productA.ID,
		map[string]any{"name": "Cafe Premium"})
	require.NoError(t, err)
	require.Equal(t, "Cafe Premium", updated.(*model.Product).Name)

	_, err = f.svc.Update(ctx, f.accountB, authz.TypeProduct, f.productA.ID,
		map[string]any{"name": "Robado"})
	require.ErrorIs(t, err, apperr.ErrAuthorization)
}

func TestDeleteOwnerOnlyThenGone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.ErrorIs(t, f.svc.Delete(ctx, f.accountB, authz.TypeProduct, f.productA.ID), apperr.ErrAuthorization)
	require.NoError(t, f.svc.Delete(ctx, f.accountA, authz.TypeProduct, f.productA.ID))

	_, err := f.svc.Get(ctx, f.accountA, authz.TypeProduct, f.productA.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDanglingParentBehavesAsMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Deleting the store leaves its product row behind with a store_id that
	// no longer resolves. The row must be unreachable for every caller, its
	// contents included.
	require.NoError(t, f.svc.Delete(ctx, f.accountA, authz.TypeStore, f.storeA.ID))

	for _, caller := range []uuid.UUID{f.accountA, f.accountB} {
		got, err := f.svc.Get(ctx, caller, authz.TypeProduct, f.productA.ID)
		require.ErrorIs(t, err, apperr.ErrNotFound)
		require.Nil(t, got)

		_, err = f.svc.Update(ctx, caller, authz.TypeProduct, f.productA.ID,
			map[string]any{"name": "Huerfano"})
		require.ErrorIs(t, err, apperr.ErrNotFound)

		err = f.svc.Delete(ctx, caller, authz.TypeProduct, f.productA.ID)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	}

	// Nothing above reached persistence: the row is untouched.
	p, ok := f.backend.products[f.productA.ID]
	require.True(t, ok)
	require.Equal(t, "Cafe", p.Name)
}

func TestDeleteMissingResourceIsNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Delete(context.Background(), f.accountA, authz.TypeProduct, uuid.New())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

type recordingConn struct {
	mu       sync.Mutex
	messages [][]byte
}

func (c *recordingConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, data)
	return nil
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func TestBroadcastsStayWithinTenant(t *testing.T) {
	backend := newMemBackend()
	hub := ws.NewHub()
	go hub.Run()
	svc := NewResourceService(authz.NewGate(authz.NewResolver(backend)), backend, hub)

	accountA := uuid.New()
	accountB := uuid.New()
	connA := &recordingConn{}
	connB := &recordingConn{}
	hub.Register <- ws.NewClient(accountA, connA)
	hub.Register <- ws.NewClient(accountB, connB)

	store := &model.Store{Name: "Tienda A", OwnerAccountID: accountA}
	require.NoError(t, svc.Create(context.Background(), accountA, authz.TypeStore, store, nil))

	require.Eventually(t, func() bool {
		return connA.count() == 1
	}, time.Second, 10*time.Millisecond)
	require.Zero(t, connB.count())
}
