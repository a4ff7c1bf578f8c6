package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/apperr"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/authz"
	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/ws"
)

// Persistence is the write/read collaborator the orchestrator delegates to
// once a request clears the gate.
type Persistence interface {
	Create(ctx context.Context, t authz.ResourceType, entity any) error
	Get(ctx context.Context, t authz.ResourceType, id uuid.UUID) (any, bool, error)
	Update(ctx context.Context, t authz.ResourceType, id uuid.UUID, changes map[string]any) (any, bool, error)
	Delete(ctx context.Context, t authz.ResourceType, id uuid.UUID) (bool, error)
	List(ctx context.Context, t authz.ResourceType, filter authz.ScopedFilter) (any, error)
}

// ResourceService orchestrates every resource operation in a fixed,
// short-circuiting order: gate decision, then (lists only) query scoping,
// then delegation to persistence. Session validation happens earlier, in the
// auth middleware, before any of these run.
type ResourceService interface {
	Create(ctx context.Context, accountID uuid.UUID, t authz.ResourceType, entity any, refs map[authz.ResourceType]uuid.UUID) error
	Get(ctx context.Context, accountID uuid.UUID, t authz.ResourceType, id uuid.UUID) (any, error)
	Update(ctx context.Context, accountID uuid.UUID, t authz.ResourceType, id uuid.UUID, changes map[string]any) (any, error)
	Delete(ctx context.Context, accountID uuid.UUID, t authz.ResourceType, id uuid.UUID) error
	List(ctx context.Context, accountID uuid.UUID, t authz.ResourceType, filter authz.Filter) (any, error)
}

type resourceService struct {
	gate  *authz.Gate
	store Persistence
	hub   *ws.Hub
}

func NewResourceService(gate *authz.Gate, store Persistence, hub *ws.Hub) ResourceService {
	return &resourceService{gate: gate, store: store, hub: hub}
}

func (s *resourceService) Create(ctx context.Context, accountID uuid.UUID, t authz.ResourceType, entity any, refs map[authz.ResourceType]uuid.UUID) error {
	verdict, err := s.gate.AuthorizeCreate(ctx, accountID, t, refs)
	if err != nil {
		return gateErr(err)
	}
	if verdict == authz.VerdictDeny {
		return apperr.ErrAuthorization
	}
	if err := s.store.Create(ctx, t, entity); err != nil {
		return fmt.Errorf("%w: create %s: %v", apperr.ErrInternal, t, err)
	}
	s.broadcast("created", t, accountID, entity)
	return nil
}

func (s *resourceService) Get(ctx context.Context, accountID uuid.UUID, t authz.ResourceType, id uuid.UUID) (any, error) {
	verdict, err := s.gate.AuthorizeMutate(ctx, accountID, t, id)
	if err != nil {
		return nil, gateErr(err)
	}
	switch verdict {
	case authz.VerdictDeny:
		return nil, apperr.ErrAuthorization
	case authz.VerdictPassThrough:
		// Unresolvable covers both a missing row and a surviving row whose
		// parent chain dangles; neither may reach persistence, and every
		// caller gets the same answer.
		return nil, apperr.ErrNotFound
	}
	entity, found, err := s.store.Get(ctx, t, id)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", apperr.ErrInternal, t, err)
	}
	if !found {
		return nil, apperr.ErrNotFound
	}
	return entity, nil
}

func (s *resourceService) Update(ctx context.Context, accountID uuid.UUID, t authz.ResourceType, id uuid.UUID, changes map[string]any) (any, error) {
	verdict, err := s.gate.AuthorizeMutate(ctx, accountID, t, id)
	if err != nil {
		return nil, gateErr(err)
	}
	if verdict == authz.VerdictDeny {
		return nil, apperr.ErrAuthorization
	}
	if verdict == authz.VerdictPassThrough {
		return nil, apperr.ErrNotFound
	}
	entity, found, err := s.store.Update(ctx, t, id, changes)
	if err != nil {
		return nil, fmt.Errorf("%w: update %s: %v", apperr.ErrInternal, t, err)
	}
	if !found {
		return nil, apperr.ErrNotFound
	}
	s.broadcast("updated", t, accountID, entity)
	return entity, nil
}

func (s *resourceService) Delete(ctx context.Context, accountID uuid.UUID, t authz.ResourceType, id uuid.UUID) error {
	verdict, err := s.gate.AuthorizeMutate(ctx, accountID, t, id)
	if err != nil {
		return gateErr(err)
	}
	if verdict == authz.VerdictDeny {
		return apperr.ErrAuthorization
	}
	if verdict == authz.VerdictPassThrough {
		return apperr.ErrNotFound
	}
	found, err := s.store.Delete(ctx, t, id)
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", apperr.ErrInternal, t, err)
	}
	if !found {
		return apperr.ErrNotFound
	}
	s.broadcast("deleted", t, accountID, map[string]any{"id": id})
	return nil
}

func (s *resourceService) List(ctx context.Context, accountID uuid.UUID, t authz.ResourceType, filter authz.Filter) (any, error) {
	scoped, err := authz.Scope(t, accountID, filter)
	if err != nil {
		return nil, err
	}
	entities, err := s.store.List(ctx, t, scoped)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %v", apperr.ErrInternal, t, err)
	}
	return entities, nil
}

// gateErr keeps validation errors user-visible and wraps everything else as
// internal.
func gateErr(err error) error {
	if errors.Is(err, apperr.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
}

func (s *resourceService) broadcast(action string, t authz.ResourceType, accountID uuid.UUID, data any) {
	if s.hub == nil {
		return
	}
	go func() {
		payload := map[string]any{
			"type":       "resource_update",
			"action":     action,
			"resource":   string(t),
			"account_id": accountID.String(),
			"data":       data,
		}
		msg, _ := json.Marshal(payload)
		s.hub.Broadcast <- ws.Event{AccountID: accountID, Payload: msg}
	}()
}
