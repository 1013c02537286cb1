package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/httperr"
)

func TestEnsureCreatesThenReuses(t *testing.T) {
	svc := NewUserService(store.NewUsers())

	created := svc.Ensure("Ana@Example.com", "ext-1")
	assert.Equal(t, "ana@example.com", created.Email)
	assert.Equal(t, "ext-1", created.ID, "external id becomes the primary id")
	assert.Equal(t, "ext-1", created.ExternalID)

	again := svc.Ensure("ana@example.com", "ext-1")
	assert.Equal(t, created.ID, again.ID)
}

func TestEnsureWithoutExternalIDGetsUUID(t *testing.T) {
	svc := NewUserService(store.NewUsers())

	u := svc.Ensure("ana@example.com", "")
	assert.NotEmpty(t, u.ID)
	assert.Empty(t, u.ExternalID)
}

func TestEnsureLinksExternalIDLater(t *testing.T) {
	svc := NewUserService(store.NewUsers())

	first := svc.Ensure("ana@example.com", "")
	linked := svc.Ensure("ana@example.com", "ext-9")
	assert.Equal(t, first.ID, linked.ID, "internal id is stable")
	assert.Equal(t, "ext-9", linked.ExternalID)
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := NewUserService(store.NewUsers())
	u := svc.Ensure("ana@example.com", "")

	name := "Ana García"
	updated, err := svc.UpdateProfile(u.ID, ProfileChanges{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana García", updated.Name)
	assert.Empty(t, updated.Phone)

	phone := "+54 11 5555-0001"
	updated, err = svc.UpdateProfile(u.ID, ProfileChanges{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Ana García", updated.Name, "unset fields untouched")
	assert.Equal(t, phone, updated.Phone)
}

func TestUpdateAddressStoresCopy(t *testing.T) {
	svc := NewUserService(store.NewUsers())
	u := svc.Ensure("ana@example.com", "")

	addr := models.Address{Street: "Av. Santa Fe", Number: "1234", City: "CABA", ZipCode: "1059", Country: "AR"}
	updated, err := svc.UpdateAddress(u.ID, addr)
	require.NoError(t, err)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "Av. Santa Fe", updated.Address.Street)

	addr.Street = "mutated"
	fetched, err := svc.GetByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Av. Santa Fe", fetched.Address.Street)
}

func TestUserLookupsNotFound(t *testing.T) {
	svc := NewUserService(store.NewUsers())

	_, err := svc.GetByID("ghost")
	assert.True(t, httperr.Is(err, 404))

	_, err = svc.GetByEmail("ghost@example.com")
	assert.True(t, httperr.Is(err, 404))

	_, err = svc.UpdateProfile("ghost", ProfileChanges{})
	assert.True(t, httperr.Is(err, 404))
}
