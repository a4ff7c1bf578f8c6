// Package authz implements ownership-chain resolution, access decisions, and
// list-query scoping for the multi-tenant resource tree. One descriptor table
// drives every resource type; there is no per-entity authorization code.
package authz

import (
	"context"

	"github.com/google/uuid"
)

// ResourceType names an entity kind in the ownership tree.
type ResourceType string

const (
	TypeStore           ResourceType = "store"
	TypeBranch          ResourceType = "branch"
	TypeProduct         ResourceType = "product"
	TypeProductTax      ResourceType = "product_tax"
	TypeInventoryRecord ResourceType = "inventory_record"
)

// Descriptor describes how one resource type reaches its owning account:
// either directly (Root) or through one parent traversal step.
type Descriptor struct {
	Type ResourceType

	// Root types carry the owner reference on the record itself.
	Root bool

	// Parent is the traversal step for non-root types. InventoryRecord
	// resolves via its product only; the branch link is checked separately
	// at creation.
	Parent ResourceType

	// CreateRefs lists the parent references a creation payload must carry.
	CreateRefs []ResourceType
}

// descriptors is the single table that replaces per-entity ownership logic.
var descriptors = map[ResourceType]Descriptor{
	TypeStore: {
		Type: TypeStore,
		Root: true,
	},
	TypeBranch: {
		Type:       TypeBranch,
		Parent:     TypeStore,
		CreateRefs: []ResourceType{TypeStore},
	},
	TypeProduct: {
		Type:       TypeProduct,
		Parent:     TypeStore,
		CreateRefs: []ResourceType{TypeStore},
	},
	TypeProductTax: {
		Type:       TypeProductTax,
		Parent:     TypeProduct,
		CreateRefs: []ResourceType{TypeProduct},
	},
	TypeInventoryRecord: {
		Type:       TypeInventoryRecord,
		Parent:     TypeProduct,
		CreateRefs: []ResourceType{TypeProduct, TypeBranch},
	},
}

// DescriptorFor returns the descriptor for a resource type.
func DescriptorFor(t ResourceType) (Descriptor, bool) {
	d, ok := descriptors[t]
	return d, ok
}

// Types returns every resource type known to the descriptor table.
func Types() []ResourceType {
	out := make([]ResourceType, 0, len(descriptors))
	for t := range descriptors {
		out = append(out, t)
	}
	return out
}

// Record is the slice of a persisted row the resolver needs: its id, the
// owner reference (root types only), and its parent references by type.
type Record struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Parents map[ResourceType]uuid.UUID
}

// Lookup is the read-only persistence collaborator the resolver walks.
// Implementations must report a missing row as found=false, never as an error.
type Lookup interface {
	Find(ctx context.Context, t ResourceType, id uuid.UUID) (Record, bool, error)
}
