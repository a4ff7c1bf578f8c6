package authz

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/GabrielEscorcia27/saas-impuestos-backend/internal/apperr"
)

// reservedFilterKeys are the ownership-path field names a caller-supplied
// filter may never set. A colliding key is rejected instead of silently
// overriding the ownership clause.
var reservedFilterKeys = map[string]struct{}{
	"owner":            {},
	"owner_account_id": {},
}

// Filter is an immutable set of column conditions for a listing query.
// The zero value matches everything.
type Filter struct {
	conds map[string]any
}

// NewFilter copies the given conditions into a Filter. The caller's map is
// never retained.
func NewFilter(conds map[string]any) Filter {
	if len(conds) == 0 {
		return Filter{}
	}
	copied := make(map[string]any, len(conds))
	for k, v := range conds {
		copied[k] = v
	}
	return Filter{conds: copied}
}

// Conditions returns a copy of the filter's conditions.
func (f Filter) Conditions() map[string]any {
	out := make(map[string]any, len(f.conds))
	for k, v := range f.conds {
		out[k] = v
	}
	return out
}

// Len reports the number of conditions.
func (f Filter) Len() int { return len(f.conds) }

// OwnerClause restricts a listing query to the subtree owned by one account,
// following the resource type's ownership path.
type OwnerClause struct {
	Type      ResourceType
	AccountID uuid.UUID
}

// ScopedFilter is the effective filter for a listing query: the caller's
// conditions AND the ownership clause. The clause is always present and can
// never be weakened by the caller.
type ScopedFilter struct {
	Filter Filter
	Owner  OwnerClause
}

// Scope merges a caller-supplied filter with the ownership clause for the
// given resource type. The merge is additive only: caller keys colliding with
// the ownership path's field names are an error, not an override. The input
// filter is not mutated.
func Scope(t ResourceType, accountID uuid.UUID, caller Filter) (ScopedFilter, error) {
	if _, ok := DescriptorFor(t); !ok {
		return ScopedFilter{}, fmt.Errorf("authz: unknown resource type %q", t)
	}
	for key := range caller.conds {
		if _, reserved := reservedFilterKeys[key]; reserved {
			return ScopedFilter{}, fmt.Errorf("%w: filter key %q conflicts with the ownership clause", apperr.ErrValidation, key)
		}
	}
	return ScopedFilter{
		Filter: NewFilter(caller.conds),
		Owner:  OwnerClause{Type: t, AccountID: accountID},
	}, nil
}
