package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedastudio/boutique/app/models"
)

func TestInventoryMutateIsAtomicPerProduct(t *testing.T) {
	inv := NewInventory()
	inv.Seed([]models.Product{{ID: "p1", Stock: 50}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := inv.Mutate("p1", func(p models.Product) (models.Product, error) {
				if p.Stock <= 0 {
					return p, errors.New("sold out")
				}
				p.Stock--
				return p, nil
			})
			require.True(t, ok)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	p, ok := inv.Get("p1")
	require.True(t, ok)
	assert.Equal(t, 0, p.Stock, "50 concurrent decrements from 50 must land exactly at 0")
}

func TestInventoryMutateErrorLeavesRecordUntouched(t *testing.T) {
	inv := NewInventory()
	inv.Seed([]models.Product{{ID: "p1", Stock: 0}})

	_, ok, err := inv.Mutate("p1", func(p models.Product) (models.Product, error) {
		return p, errors.New("sold out")
	})
	require.True(t, ok)
	require.Error(t, err)

	p, _ := inv.Get("p1")
	assert.Equal(t, 0, p.Stock)
}

func TestInventoryMutateUnknownProduct(t *testing.T) {
	inv := NewInventory()

	_, ok, err := inv.Mutate("ghost", func(p models.Product) (models.Product, error) {
		return p, nil
	})
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestInventorySnapshotsAreIsolated(t *testing.T) {
	inv := NewInventory()
	inv.Seed([]models.Product{{ID: "p1", Tags: []string{"seda"}}})

	p, _ := inv.Get("p1")
	p.Tags[0] = "mutated"

	again, _ := inv.Get("p1")
	assert.Equal(t, "seda", again.Tags[0])
}

func TestUsersOneRecordPerNormalizedEmail(t *testing.T) {
	users := NewUsers()
	users.Upsert(models.User{ID: "u1", Email: "  Ana@Example.COM "})

	u, ok := users.GetByEmail("ana@example.com")
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "ana@example.com", u.Email)

	// Second account claiming the same normalized email takes over the index.
	users.Upsert(models.User{ID: "u2", Email: "ANA@example.com"})
	u, ok = users.GetByEmail("Ana@Example.com")
	require.True(t, ok)
	assert.Equal(t, "u2", u.ID)
}

func TestAuthCodesLastWriteWins(t *testing.T) {
	codes := NewAuthCodes()
	codes.Save(models.AuthCode{Email: "ana@example.com", Code: "111111"})
	codes.Save(models.AuthCode{Email: "ANA@example.com", Code: "222222"})

	c, ok := codes.Get("ana@example.com")
	require.True(t, ok)
	assert.Equal(t, "222222", c.Code)

	codes.Delete("ana@example.com")
	_, ok = codes.Get("ana@example.com")
	assert.False(t, ok)
}

func TestOrdersUpdateRequiresExistingOrder(t *testing.T) {
	orders := NewOrders()

	err := orders.Update(models.Order{ID: "missing"})
	assert.ErrorIs(t, err, ErrOrderUnknown)
}

func TestOrdersListByUserNewestFirst(t *testing.T) {
	orders := NewOrders()
	base := time.Now()
	orders.Save(models.Order{ID: "o1", UserID: "u1", CreatedAt: base.Add(-2 * time.Hour)})
	orders.Save(models.Order{ID: "o2", UserID: "u1", CreatedAt: base})
	orders.Save(models.Order{ID: "o3", UserID: "other", CreatedAt: base})

	got := orders.ListByUser("u1")
	require.Len(t, got, 2)
	assert.Equal(t, "o2", got[0].ID)
	assert.Equal(t, "o1", got[1].ID)
}

func TestOrderHistorySnapshotIsolation(t *testing.T) {
	orders := NewOrders()
	orders.Save(models.Order{ID: "o1", History: []models.HistoryEntry{{Status: "pending-payment"}}})

	o, _ := orders.Get("o1")
	o.History[0].Status = "tampered"

	again, _ := orders.Get("o1")
	assert.Equal(t, "pending-payment", again.History[0].Status)
}
