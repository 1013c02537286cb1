package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/pkg/httperr"
)

type stubPrefs struct {
	resp *preference.Response
	err  error
	got  preference.Request
}

func (s *stubPrefs) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	s.got = req
	return s.resp, s.err
}

func testUser() models.User {
	return models.User{ID: "usr-1", Email: "ana@example.com", Name: "Ana"}
}

func testProduct() models.Product {
	return models.Product{ID: "prd-1", Title: "Camisa de seda Luar", Summary: "seda", Currency: "USD", Price: 320}
}

func TestMapStatusTable(t *testing.T) {
	g := &MercadoPago{}

	assert.Equal(t, models.StatusPaid, g.MapStatus("approved"))
	assert.Equal(t, models.StatusFailed, g.MapStatus("rejected"))
	assert.Equal(t, models.StatusPendingPayment, g.MapStatus("in_process"))
	assert.Equal(t, models.StatusPendingPayment, g.MapStatus(""))
}

func TestValidateSignature(t *testing.T) {
	g := &MercadoPago{webhookSecret: "s3cret"}

	assert.True(t, g.ValidateSignature("s3cret"))
	assert.False(t, g.ValidateSignature("wrong"))
	assert.False(t, g.ValidateSignature(""))
}

func TestCreatePreferenceHappyPath(t *testing.T) {
	stub := &stubPrefs{resp: &preference.Response{ID: "pref-1", InitPoint: "https://mp.example/checkout"}}
	g := &MercadoPago{prefs: stub}

	pref, err := g.CreatePreference(context.Background(), testUser(), testProduct(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "pref-1", pref.ID)
	assert.Equal(t, "https://mp.example/checkout", pref.RedirectURL)
	assert.Equal(t, "ord-1", stub.got.ExternalReference)
	require.Len(t, stub.got.Items, 1)
	assert.Equal(t, 1, stub.got.Items[0].Quantity)
	assert.Equal(t, 320.0, stub.got.Items[0].UnitPrice)
}

func TestCreatePreferenceFallsBackToSandboxURL(t *testing.T) {
	stub := &stubPrefs{resp: &preference.Response{ID: "pref-1", SandboxInitPoint: "https://sandbox.mp/checkout"}}
	g := &MercadoPago{prefs: stub}

	pref, err := g.CreatePreference(context.Background(), testUser(), testProduct(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.mp/checkout", pref.RedirectURL)
}

func TestCreatePreferenceRejectsIncompleteResponse(t *testing.T) {
	stub := &stubPrefs{resp: &preference.Response{ID: "pref-1"}} // no redirect URL
	g := &MercadoPago{prefs: stub}

	_, err := g.CreatePreference(context.Background(), testUser(), testProduct(), "ord-1")
	require.Error(t, err)
	assert.True(t, httperr.Is(err, 502))
}

func TestCreatePreferencePropagatesProviderError(t *testing.T) {
	stub := &stubPrefs{err: errors.New("provider down")}
	g := &MercadoPago{prefs: stub}

	_, err := g.CreatePreference(context.Background(), testUser(), testProduct(), "ord-1")
	require.Error(t, err)
	assert.True(t, httperr.Is(err, 502))
}
