package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	d, ok := Lookup("aks")
	require.True(t, ok)
	assert.Equal(t, "aks", d.Key)
	assert.Equal(t, CategoryCompute, d.Category)
	assert.NotEmpty(t, d.DisplayName)
	assert.NotEmpty(t, d.NodeKind)

	_, ok = Lookup("not_a_service")
	assert.False(t, ok)

	_, ok = Lookup("AKS")
	assert.False(t, ok, "keys are exact-match lowercase")
}

func TestRenderable(t *testing.T) {
	assert.True(t, Renderable("sql_database"))
	assert.False(t, Renderable("service_fabric"), "services without a node shape never render")
	assert.False(t, Renderable("not_a_service"))
}

func TestKeys_SortedAndComplete(t *testing.T) {
	keys := Keys()
	require.NotEmpty(t, keys)
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i], "keys must be sorted")
	}
	assert.Contains(t, keys, "front_door")
	assert.Contains(t, keys, "sentinel")
}

func TestDescriptors_Consistent(t *testing.T) {
	for _, key := range Keys() {
		d, ok := Lookup(key)
		require.True(t, ok)
		assert.Equal(t, key, d.Key, "map key and descriptor key must agree")
		assert.NotEmpty(t, d.DisplayName, key)
		assert.NotEmpty(t, d.Category, key)
	}
}
