package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/httperr"
	"github.com/sedastudio/boutique/pkg/payment"
)

// ─── Stub collaborators ───────────────────────────────────────────────────────

type gatewayStub struct {
	createCalls int
	createErr   error
}

func (g *gatewayStub) CreatePreference(_ context.Context, _ models.User, _ models.Product, orderID string) (payment.Preference, error) {
	g.createCalls++
	if g.createErr != nil {
		return payment.Preference{}, g.createErr
	}
	return payment.Preference{
		ID:          "pref-" + orderID,
		RedirectURL: "https://checkout.example/" + orderID,
		Metadata:    map[string]interface{}{"order_id": orderID},
	}, nil
}

func (g *gatewayStub) MapStatus(raw string) models.OrderStatus {
	switch raw {
	case "approved":
		return models.StatusPaid
	case "rejected":
		return models.StatusFailed
	default:
		return models.StatusPendingPayment
	}
}

func (g *gatewayStub) ValidateSignature(sig string) bool { return sig == "secret" }

type durableStub struct {
	upserts   int
	events    int
	upsertErr error
	appendErr error
}

func (d *durableStub) UpsertOrder(models.Order) error {
	d.upserts++
	return d.upsertErr
}

func (d *durableStub) AppendEvent(string, string, string, map[string]interface{}, time.Time) error {
	d.events++
	return d.appendErr
}

type mailerStub struct{ confirmations int }

func (m *mailerStub) SendPaymentConfirmation(models.User, models.Order, models.Product) {
	m.confirmations++
}

type notifierStub struct{ notified int }

func (n *notifierStub) NotifyOrderPaid(string, string, float64) { n.notified++ }

// ─── Fixture ──────────────────────────────────────────────────────────────────

type orderFixture struct {
	svc      *OrderService
	inv      *store.Inventory
	orders   *store.Orders
	gateway  *gatewayStub
	side     *durableStub
	mailer   *mailerStub
	notifier *notifierStub
	refresh  *int
}

func newOrderFixture(t *testing.T, stock int) *orderFixture {
	t.Helper()

	inv := store.NewInventory()
	inv.Seed([]models.Product{{
		ID: "prd-1", SKU: "SKU-1", Title: "Camisa de seda Luar",
		Summary: "seda", Price: 320, Currency: "USD", Stock: stock,
	}})

	users := store.NewUsers()
	users.Upsert(models.User{ID: "usr-1", Email: "ana@example.com", Name: "Ana"})

	orders := store.NewOrders()
	gateway := &gatewayStub{}
	side := &durableStub{}
	mailer := &mailerStub{}
	notifier := &notifierStub{}
	refreshes := 0

	svc := NewOrderService(
		orders,
		NewProductService(inv),
		NewUserService(users),
		gateway,
		side,
		mailer,
		notifier,
		func() { refreshes++ },
	)

	return &orderFixture{
		svc: svc, inv: inv, orders: orders,
		gateway: gateway, side: side, mailer: mailer, notifier: notifier,
		refresh: &refreshes,
	}
}

func (f *orderFixture) stock(t *testing.T) int {
	t.Helper()
	p, ok := f.inv.Get("prd-1")
	require.True(t, ok)
	return p.Stock
}

// ─── Create ───────────────────────────────────────────────────────────────────

func TestCreateOrderHappyPath(t *testing.T) {
	f := newOrderFixture(t, 1)

	created, err := f.svc.Create(context.Background(), "usr-1", "prd-1", "ext-1")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPendingPayment, created.Order.Status)
	assert.Equal(t, 320.0, created.Order.Total)
	assert.Equal(t, "USD", created.Order.Currency)
	assert.Equal(t, "pref-"+created.Order.ID, created.Order.PaymentReference)
	assert.NotEmpty(t, created.Order.PaymentURL)
	require.Len(t, created.Order.History, 1)
	assert.Equal(t, 0, created.Product.Stock)
	assert.Equal(t, 0, f.stock(t))

	saved, ok := f.orders.Get(created.Order.ID)
	require.True(t, ok)
	assert.Equal(t, models.StatusPendingPayment, saved.Status)

	assert.Equal(t, 1, f.side.upserts)
	assert.Equal(t, 1, f.side.events)
	assert.GreaterOrEqual(t, *f.refresh, 1)
}

func TestCreateOrderOutOfStockFailsBeforeGateway(t *testing.T) {
	f := newOrderFixture(t, 0)

	_, err := f.svc.Create(context.Background(), "usr-1", "prd-1", "ext-1")
	require.Error(t, err)
	assert.True(t, httperr.Is(err, 409))
	assert.Equal(t, 0, f.gateway.createCalls, "gateway must not be called without a reservation")
	assert.Equal(t, 0, f.stock(t))
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture(t, 1)

	_, err := f.svc.Create(context.Background(), "usr-1", "ghost", "ext-1")
	assert.True(t, httperr.Is(err, 404))
	assert.Equal(t, 0, f.gateway.createCalls)
}

func TestCreateOrderUnknownUser(t *testing.T) {
	f := newOrderFixture(t, 1)

	_, err := f.svc.Create(context.Background(), "ghost", "prd-1", "ext-1")
	assert.True(t, httperr.Is(err, 404))
	assert.Equal(t, 1, f.stock(t), "no reservation for an unknown user")
}

func TestCreateOrderCompensatesWhenDurablePersistFails(t *testing.T) {
	f := newOrderFixture(t, 1)
	f.side.upsertErr = httperr.BadGateway("durable store down", nil)

	_, err := f.svc.Create(context.Background(), "usr-1", "prd-1", "ext-1")
	require.Error(t, err)
	assert.True(t, httperr.Is(err, 502))

	// The order is gone and the unit is back.
	assert.Empty(t, f.orders.ListByUser("usr-1"))
	assert.Equal(t, 1, f.stock(t))
	assert.GreaterOrEqual(t, *f.refresh, 2, "refresh re-triggered after compensation")
}

func TestCreateOrderRequiresExternalIdentity(t *testing.T) {
	f := newOrderFixture(t, 1)

	_, err := f.svc.Create(context.Background(), "usr-1", "prd-1", "")
	require.Error(t, err)
	assert.True(t, httperr.Is(err, 400))
	assert.Equal(t, 1, f.stock(t), "reservation rolled back")
	assert.Empty(t, f.orders.ListByUser("usr-1"))
}

// ─── UpdateStatus ─────────────────────────────────────────────────────────────

func TestUpdateStatusApprovedThenIdempotentRepeat(t *testing.T) {
	f := newOrderFixture(t, 1)

	created, err := f.svc.Create(context.Background(), "usr-1", "prd-1", "ext-1")
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(context.Background(), created.Order.ID, "approved", "pay-123")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, updated.Status)
	assert.Equal(t, "pay-123", updated.PaymentReference)
	require.Len(t, updated.History, 2)
	assert.Equal(t, 1, f.mailer.confirmations)
	assert.Equal(t, 1, f.notifier.notified)

	// Second identical callback: unchanged order, no duplicate side effects.
	again, err := f.svc.UpdateStatus(context.Background(), created.Order.ID, "approved", "pay-123")
	require.NoError(t, err)
	assert.Len(t, again.History, 2)
	assert.Equal(t, 1, f.mailer.confirmations)
	assert.Equal(t, 1, f.notifier.notified)
}

func TestUpdateStatusRejectedReleasesStock(t *testing.T) {
	f := newOrderFixture(t, 1)

	created, err := f.svc.Create(context.Background(), "usr-1", "prd-1", "ext-1")
	require.NoError(t, err)
	require.Equal(t, 0, f.stock(t))

	updated, err := f.svc.UpdateStatus(context.Background(), created.Order.ID, "rejected", "pay-456")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, updated.Status)
	assert.Equal(t, 1, f.stock(t), "failed payment returns the unit")
	assert.Equal(t, 0, f.mailer.confirmations)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	f := newOrderFixture(t, 1)

	_, err := f.svc.UpdateStatus(context.Background(), "ghost", "approved", "pay-1")
	assert.True(t, httperr.Is(err, 404))
}

func TestUpdateStatusUnknownProviderStatusIsPending(t *testing.T) {
	f := newOrderFixture(t, 1)

	created, err := f.svc.Create(context.Background(), "usr-1", "prd-1", "ext-1")
	require.NoError(t, err)

	// pending-payment → pending-payment: mapped status equals current, no-op.
	same, err := f.svc.UpdateStatus(context.Background(), created.Order.ID, "in_process", "pay-9")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingPayment, same.Status)
	assert.Len(t, same.History, 1)
	assert.Equal(t, created.Order.PaymentReference, same.PaymentReference)
}

func TestUpdateStatusDurableFailureSurfacesButLocalCommitStands(t *testing.T) {
	f := newOrderFixture(t, 1)

	created, err := f.svc.Create(context.Background(), "usr-1", "prd-1", "ext-1")
	require.NoError(t, err)

	f.side.upsertErr = httperr.BadGateway("durable store down", nil)

	_, err = f.svc.UpdateStatus(context.Background(), created.Order.ID, "approved", "pay-123")
	require.Error(t, err)
	assert.True(t, httperr.Is(err, 502))

	// Known consistency gap: the local transition is already committed.
	local, getErr := f.svc.Get(created.Order.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.StatusPaid, local.Status)
}

func TestTotalImmutableAcrossPriceChange(t *testing.T) {
	f := newOrderFixture(t, 2)

	created, err := f.svc.Create(context.Background(), "usr-1", "prd-1", "ext-1")
	require.NoError(t, err)
	require.Equal(t, 320.0, created.Order.Total)

	// Reprice the product after checkout started.
	_, _, err = f.inv.Mutate("prd-1", func(p models.Product) (models.Product, error) {
		p.Price = 999
		return p, nil
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(context.Background(), created.Order.ID, "approved", "pay-1")
	require.NoError(t, err)
	assert.Equal(t, 320.0, updated.Total, "total captured at creation, never recomputed")
}
