package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/httperr"
)

func newProductFixture(stock int) (*ProductService, *store.Inventory) {
	inv := store.NewInventory()
	inv.Seed([]models.Product{{ID: "prd-1", Title: "Camisa", Stock: stock}})
	return NewProductService(inv), inv
}

func TestProductGetNotFound(t *testing.T) {
	svc, _ := newProductFixture(1)

	_, err := svc.Get("ghost")
	assert.True(t, httperr.Is(err, 404))
}

func TestReserveDecrementsToZero(t *testing.T) {
	svc, _ := newProductFixture(2)

	p, err := svc.Reserve("prd-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)

	p, err = svc.Reserve("prd-1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
}

func TestReserveConflictNeverMutates(t *testing.T) {
	svc, inv := newProductFixture(0)

	_, err := svc.Reserve("prd-1")
	require.Error(t, err)
	assert.True(t, httperr.Is(err, 409))

	p, ok := inv.Get("prd-1")
	require.True(t, ok)
	assert.Equal(t, 0, p.Stock, "stock stays at zero, never negative")
}

func TestReserveUnknownProduct(t *testing.T) {
	svc, _ := newProductFixture(1)

	_, err := svc.Reserve("ghost")
	assert.True(t, httperr.Is(err, 404))
}

func TestReleaseIncrements(t *testing.T) {
	svc, _ := newProductFixture(1)

	_, err := svc.Reserve("prd-1")
	require.NoError(t, err)

	p, err := svc.Release("prd-1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Stock)
}

func TestListReturnsCatalog(t *testing.T) {
	svc, inv := newProductFixture(1)
	inv.Seed([]models.Product{
		{ID: "prd-2", Title: "B", Stock: 1},
		{ID: "prd-1", Title: "A", Stock: 1},
	})

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "prd-1", list[0].ID)
}
