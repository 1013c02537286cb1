package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/searchindex"
)

type remoteStub struct {
	records   []searchindex.Record
	cleared   bool
	replaced  bool
	searchErr error
	hits      []models.Product
	total     int
	lastQuery string
}

func (r *remoteStub) ReplaceAll(records []searchindex.Record) error {
	r.replaced = true
	r.records = records
	return nil
}

func (r *remoteStub) Clear() error {
	r.cleared = true
	return nil
}

func (r *remoteStub) Search(query string, offset, limit int) (searchindex.Result, error) {
	r.lastQuery = query
	if r.searchErr != nil {
		return searchindex.Result{}, r.searchErr
	}
	return searchindex.Result{Hits: r.hits, Total: r.total}, nil
}

func seededInventory() *store.Inventory {
	inv := store.NewInventory()
	inv.Seed([]models.Product{
		{
			ID: "prd-1", Title: "Camisa de seda", Summary: "seda natural",
			Tags: []string{"seda", "camisa"}, Stock: 3,
			Metadata: models.ProductMetadata{Category: "tops"},
		},
		{
			ID: "prd-2", Title: "Sweater de lana", Summary: "lana merino",
			Tags: []string{"lana"}, Stock: 2,
			Metadata: models.ProductMetadata{Category: "tops"},
		},
		{
			ID: "prd-3", Title: "Pañuelo de seda y lana", Summary: "mezcla seda lana",
			Tags: []string{"seda", "lana"}, Stock: 1,
			Metadata: models.ProductMetadata{Category: "accesorios"},
		},
		{
			ID: "prd-4", Title: "Vestido de lino", Summary: "lino crudo",
			Stock: 0,
			Metadata: models.ProductMetadata{Category: "vestidos"},
		},
	})
	return inv
}

func TestReplicaEmptyQueryReturnsAllInStockInOrder(t *testing.T) {
	svc := NewSearchService(seededInventory(), nil)

	res := svc.Run("", 0, 10)
	assert.Equal(t, "replica", res.Diagnostics.Mode)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "prd-1", res.Items[0].ID)
	assert.Equal(t, "prd-2", res.Items[1].ID)
	assert.Equal(t, "prd-3", res.Items[2].ID)
	assert.Equal(t, 4, res.Diagnostics.InventorySize)
	assert.Equal(t, 3, res.Diagnostics.InStock)
}

func TestReplicaTwoTokenMatchOutranksOne(t *testing.T) {
	svc := NewSearchService(seededInventory(), nil)

	res := svc.Run("seda lana", 0, 10)
	require.Len(t, res.Items, 3)
	// prd-3 matches both tokens, the others one each (ties keep ID order).
	assert.Equal(t, "prd-3", res.Items[0].ID)
	assert.Equal(t, "prd-1", res.Items[1].ID)
	assert.Equal(t, "prd-2", res.Items[2].ID)
}

func TestReplicaZeroScoreExcluded(t *testing.T) {
	svc := NewSearchService(seededInventory(), nil)

	res := svc.Run("terciopelo", 0, 10)
	assert.Empty(t, res.Items)
	assert.Equal(t, 0, res.Total)
}

func TestReplicaOutOfStockNeverRanked(t *testing.T) {
	svc := NewSearchService(seededInventory(), nil)

	res := svc.Run("lino", 0, 10)
	assert.Empty(t, res.Items, "prd-4 has stock 0")
}

func TestReplicaPagination(t *testing.T) {
	svc := NewSearchService(seededInventory(), nil)

	res := svc.Run("", 1, 1)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "prd-2", res.Items[0].ID)
	assert.Equal(t, 3, res.Total)

	past := svc.Run("", 10, 5)
	assert.Empty(t, past.Items)
	assert.Equal(t, 3, past.Total)
}

func TestSearchClampsLimit(t *testing.T) {
	svc := NewSearchService(seededInventory(), nil)

	res := svc.Run("", -5, 500)
	assert.Equal(t, 0, res.Offset)
	assert.Equal(t, maxSearchLimit, res.Limit)
}

func TestSearchRemoteFirst(t *testing.T) {
	remote := &remoteStub{
		hits:  []models.Product{{ID: "prd-2", Title: "Sweater de lana"}},
		total: 1,
	}
	svc := NewSearchService(seededInventory(), remote)

	res := svc.Run("lana", 0, 10)
	assert.Equal(t, "remote", res.Diagnostics.Mode)
	assert.Equal(t, "lana", remote.lastQuery)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "prd-2", res.Items[0].ID)
	assert.Equal(t, 1, res.Total)
}

func TestSearchRemoteFailureFallsBack(t *testing.T) {
	remote := &remoteStub{searchErr: errors.New("index unreachable")}
	svc := NewSearchService(seededInventory(), remote)

	res := svc.Run("seda", 0, 10)
	assert.Equal(t, "replica", res.Diagnostics.Mode)
	assert.Equal(t, 2, res.Total)
}

func TestSearchEmptyQuerySkipsRemote(t *testing.T) {
	remote := &remoteStub{hits: []models.Product{{ID: "x"}}, total: 1}
	svc := NewSearchService(seededInventory(), remote)

	res := svc.Run("   ", 0, 10)
	assert.Equal(t, "replica", res.Diagnostics.Mode)
	assert.Empty(t, remote.lastQuery)
}

func TestSyncInventoryPushesInStockOnly(t *testing.T) {
	remote := &remoteStub{}
	svc := NewSearchService(seededInventory(), remote)

	res, err := svc.SyncInventory()
	require.NoError(t, err)
	assert.True(t, res.Synced)
	assert.Equal(t, 3, res.Total)
	assert.True(t, remote.replaced)
	require.Len(t, remote.records, 3)
	assert.Equal(t, "prd-1", remote.records[0].ObjectID)
}

func TestSyncInventoryClearsWhenNothingInStock(t *testing.T) {
	inv := store.NewInventory()
	inv.Seed([]models.Product{{ID: "prd-1", Title: "Agotado", Stock: 0}})
	remote := &remoteStub{}
	svc := NewSearchService(inv, remote)

	res, err := svc.SyncInventory()
	require.NoError(t, err)
	assert.True(t, res.Synced)
	assert.Equal(t, 0, res.Total)
	assert.True(t, remote.cleared)
	assert.False(t, remote.replaced)
}

func TestSyncInventoryNoopWithoutRemote(t *testing.T) {
	svc := NewSearchService(seededInventory(), nil)

	res, err := svc.SyncInventory()
	require.NoError(t, err)
	assert.False(t, res.Synced)
	assert.False(t, svc.IsReady())
}
