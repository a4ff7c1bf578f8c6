package authz

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Resolution is the outcome of walking a resource's ownership chain.
// A zero Resolution (Resolved == false) means the resource or one of its
// required parents does not exist; that is a normal outcome, not an error.
type Resolution struct {
	Resolved bool
	OwnerID  uuid.UUID
	StoreID  uuid.UUID
}

// Resolver walks ownership chains through a read-only Lookup. It performs no
// writes and never reports a missing row as an error.
type Resolver struct {
	lookup Lookup
}

func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve walks from the given resource to its owning account following the
// descriptor table. Errors are reserved for lookup I/O failures.
func (r *Resolver) Resolve(ctx context.Context, t ResourceType, id uuid.UUID) (Resolution, error) {
	d, ok := DescriptorFor(t)
	if !ok {
		return Resolution{}, fmt.Errorf("authz: unknown resource type %q", t)
	}
	if id == uuid.Nil {
		return Resolution{}, nil
	}

	rec, found, err := r.lookup.Find(ctx, t, id)
	if err != nil {
		return Resolution{}, err
	}
	if !found {
		return Resolution{}, nil
	}

	if d.Root {
		return Resolution{Resolved: true, OwnerID: rec.OwnerID, StoreID: rec.ID}, nil
	}

	parentID, ok := rec.Parents[d.Parent]
	if !ok || parentID == uuid.Nil {
		// Dangling parent reference: unresolved, never a default owner.
		return Resolution{}, nil
	}
	return r.Resolve(ctx, d.Parent, parentID)
}
