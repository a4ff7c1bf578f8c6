package authz

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/apperr"
)

// Verdict is an access decision for a specific resource instance.
type Verdict int

const (
	// VerdictAllow lets the operation proceed.
	VerdictAllow Verdict = iota
	// VerdictDeny aborts the operation with an authorization failure.
	VerdictDeny
	// VerdictPassThrough renders no decision because the resource does not
	// resolve; the downstream not-found handling runs unmodified, so a
	// missing resource looks the same to every caller.
	VerdictPassThrough
)

func (v Verdict) String() string {
	switch v {
	case VerdictAllow:
		return "allow"
	case VerdictDeny:
		return "deny"
	case VerdictPassThrough:
		return "pass-through"
	default:
		return "unknown"
	}
}

// Gate decides create/read/update/delete access using the ownership resolver.
// It performs reads only.
type Gate struct {
	resolver *Resolver
}

func NewGate(resolver *Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// AuthorizeCreate validates a creation payload's parent references against
// the caller. refs carries the payload's parent ids keyed by resource type.
//
// Store creation is unconditionally allowed for any authenticated account;
// the creating account becomes the owner. For every other type, each required
// reference must be present and resolve to an owner equal to accountID.
// InventoryRecord additionally requires its product and branch to belong to
// the same store.
func (g *Gate) AuthorizeCreate(ctx context.Context, accountID uuid.UUID, t ResourceType, refs map[ResourceType]uuid.UUID) (Verdict, error) {
	d, ok := DescriptorFor(t)
	if !ok {
		return VerdictDeny, fmt.Errorf("authz: unknown resource type %q", t)
	}
	if d.Root {
		return VerdictAllow, nil
	}

	resolutions := make(map[ResourceType]Resolution, len(d.CreateRefs))
	for _, refType := range d.CreateRefs {
		id, ok := refs[refType]
		if !ok || id == uuid.Nil {
			return VerdictDeny, fmt.Errorf("%w: missing %s reference", apperr.ErrValidation, refType)
		}
		res, err := g.resolver.Resolve(ctx, refType, id)
		if err != nil {
			return VerdictDeny, err
		}
		if !res.Resolved {
			return VerdictDeny, fmt.Errorf("%w: referenced %s does not resolve", apperr.ErrValidation, refType)
		}
		resolutions[refType] = res
	}

	// Cross-entity consistency: an inventory record's product and branch
	// must live under the same store.
	if t == TypeInventoryRecord {
		if resolutions[TypeProduct].StoreID != resolutions[TypeBranch].StoreID {
			return VerdictDeny, nil
		}
	}

	for _, res := range resolutions {
		if res.OwnerID != accountID {
			return VerdictDeny, nil
		}
	}
	return VerdictAllow, nil
}

// AuthorizeMutate decides read/update/delete access to an existing resource.
// Allow iff the resolved owner equals accountID; Deny on mismatch;
// PassThrough when the resource (or a required parent) does not resolve.
func (g *Gate) AuthorizeMutate(ctx context.Context, accountID uuid.UUID, t ResourceType, id uuid.UUID) (Verdict, error) {
	res, err := g.resolver.Resolve(ctx, t, id)
	if err != nil {
		return VerdictDeny, err
	}
	if !res.Resolved {
		return VerdictPassThrough, nil
	}
	if res.OwnerID != accountID {
		return VerdictDeny, nil
	}
	return VerdictAllow, nil
}
