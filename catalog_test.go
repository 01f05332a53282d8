package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogListAll(t *testing.T) {
	c := NewProfileCatalog()

	first := c.ListAll()
	require.Len(t, first, 8)

	// Order is stable across calls
	second := c.ListAll()
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
	assert.Equal(t, "p1", first[0].ID)
	assert.Equal(t, "p8", first[7].ID)
}

func TestCatalogReturnsCopies(t *testing.T) {
	c := NewProfileCatalog()

	got := c.ListAll()
	got[0].Name = "tampered"
	got[0].Interests[0] = "tampered"

	fresh := c.ListAll()
	assert.Equal(t, "María", fresh[0].Name)
	assert.Equal(t, "Travel", fresh[0].Interests[0])
}

func TestCatalogGet(t *testing.T) {
	c := NewProfileCatalog()

	p, ok := c.Get("p5")
	require.True(t, ok)
	assert.Equal(t, "Isabella", p.Name)

	_, ok = c.Get("p99")
	assert.False(t, ok)
}
