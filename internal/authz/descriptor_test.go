package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEveryTypeHasDescriptor(t *testing.T) {
	types := Types()
	require.Len(t, types, 5)

	for _, typ := range types {
		d, ok := DescriptorFor(typ)
		require.True(t, ok)
		require.Equal(t, typ, d.Type)
	}
}

func TestDescriptorChainsTerminateAtRoot(t *testing.T) {
	for _, typ := range Types() {
		d, _ := DescriptorFor(typ)
		seen := map[ResourceType]bool{typ: true}
		for !d.Root {
			require.NotEmpty(t, d.Parent, "non-root type %q has no parent", d.Type)
			parent, ok := DescriptorFor(d.Parent)
			require.True(t, ok, "parent %q of %q is unknown", d.Parent, d.Type)
			require.False(t, seen[parent.Type], "cycle through %q", parent.Type)
			seen[parent.Type] = true
			d = parent
		}
	}
}

func TestNonRootCreateRefsIncludeParent(t *testing.T) {
	for _, typ := range Types() {
		d, _ := DescriptorFor(typ)
		if d.Root {
			require.Empty(t, d.CreateRefs)
			continue
		}
		require.Contains(t, d.CreateRefs, d.Parent)
	}
}

func TestUnknownTypeHasNoDescriptor(t *testing.T) {
	_, ok := DescriptorFor(ResourceType("warehouse"))
	require.False(t, ok)
}
