package cartview

import (
	"errors"
	"testing"

	"github.com/Dias221467/Storefront/pkg/storeclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = []storeclient.Product{
	{ID: "p1", Category: "shirts", Title: "Oxford", Price: 10, Images: []string{"/product/ProductAssets/oxford.png"}},
	{ID: "p2", Category: "shirts", Title: "Linen", Price: 25.5},
	{ID: "p3", Category: "hats", Title: "Cap", Price: 7},
}

func TestJoinPreservesOrderAndCopiesFields(t *testing.T) {
	raw := []storeclient.CartItem{
		{ID: "c", ProductID: "p3", Quantity: 1, Size: "One"},
		{ID: "a", ProductID: "p1", Quantity: 2, Size: "M"},
		{ID: "b", ProductID: "p2", Quantity: 3, Size: "L"},
	}

	results := Join(raw, testCatalog)
	require.Len(t, results, len(raw))
	for i, r := range results {
		assert.False(t, r.NotFound)
		assert.NoError(t, r.Err())
		assert.Equal(t, raw[i].ID, r.Item.ID)
	}

	assert.Equal(t, DisplayCartItem{
		ID:        "a",
		ProductID: "p1",
		Category:  "shirts",
		Quantity:  2,
		Size:      "M",
		Title:     "Oxford",
		Price:     10,
		Images:    []string{"/product/ProductAssets/oxford.png"},
	}, results[1].Item)
}

func TestJoinMarksMissingProducts(t *testing.T) {
	raw := []storeclient.CartItem{
		{ID: "a", ProductID: "p1", Quantity: 1},
		{ID: "x", ProductID: "gone", Quantity: 4},
	}

	results := Join(raw, testCatalog)
	require.Len(t, results, 2)
	assert.True(t, results[1].NotFound)
	assert.True(t, errors.Is(results[1].Err(), ErrProductNotFound))

	items, missing := Resolved(results)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, []storeclient.CartItem{raw[1]}, missing)
}

func TestJoinEmptyCatalog(t *testing.T) {
	results := Join([]storeclient.CartItem{{ID: "a", ProductID: "p1"}}, nil)
	require.Len(t, results, 1)
	assert.True(t, results[0].NotFound)
}

func TestTotal(t *testing.T) {
	assert.Zero(t, Total(nil))

	items := []DisplayCartItem{
		{ID: "a", Price: 10, Quantity: 2},
		{ID: "b", Price: 25.5, Quantity: 2},
	}
	assert.Equal(t, 71.0, Total(items))
	assert.Equal(t, 71.0-25.5*2, Total(items[:1]))
}
