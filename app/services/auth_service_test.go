package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/httperr"
)

type senderStub struct {
	email string
	code  string
	calls int
}

func (s *senderStub) SendLoginCode(email, code string, _ time.Time) {
	s.email = email
	s.code = code
	s.calls++
}

func newAuthFixture() (*AuthService, *store.AuthCodes, *senderStub) {
	users := NewUserService(store.NewUsers())
	codes := store.NewAuthCodes()
	sender := &senderStub{}
	return NewAuthService(users, codes, sender), codes, sender
}

func TestRequestCodeCreatesUserAndSendsCode(t *testing.T) {
	svc, codes, sender := newAuthFixture()

	req, err := svc.RequestCode("  Ana@Example.COM ")
	require.NoError(t, err)
	assert.NotEmpty(t, req.UserID)
	assert.True(t, req.ExpiresAt.After(time.Now()))

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "ana@example.com", sender.email)
	assert.Len(t, sender.code, 6)

	stored, ok := codes.Get("ana@example.com")
	require.True(t, ok)
	assert.Equal(t, sender.code, stored.Code)
	assert.Equal(t, 0, stored.Attempts)
}

func TestRequestCodeRotatesLiveCode(t *testing.T) {
	svc, codes, sender := newAuthFixture()

	_, err := svc.RequestCode("ana@example.com")
	require.NoError(t, err)
	first := sender.code

	_, err = svc.RequestCode("ana@example.com")
	require.NoError(t, err)

	stored, ok := codes.Get("ana@example.com")
	require.True(t, ok)
	assert.Equal(t, sender.code, stored.Code)
	if first == sender.code {
		t.Skip("random codes collided; nothing to assert")
	}
	assert.NotEqual(t, first, stored.Code)
}

func TestExchangeCodeIssuesSessionAndBurnsCode(t *testing.T) {
	svc, _, sender := newAuthFixture()

	_, err := svc.RequestCode("ana@example.com")
	require.NoError(t, err)

	resp, err := svc.ExchangeCode("ana@example.com", sender.code)
	require.NoError(t, err)
	assert.Equal(t, "2h", resp.ExpiresIn)

	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", claims.Email)

	// The code is single-use.
	_, err = svc.ExchangeCode("ana@example.com", sender.code)
	assert.True(t, httperr.Is(err, 401))
}

func TestExchangeCodeWrongCodeCountsAttempt(t *testing.T) {
	svc, codes, sender := newAuthFixture()

	_, err := svc.RequestCode("ana@example.com")
	require.NoError(t, err)

	_, err = svc.ExchangeCode("ana@example.com", "000000")
	assert.True(t, httperr.Is(err, 401))

	stored, ok := codes.Get("ana@example.com")
	require.True(t, ok)
	assert.Equal(t, 1, stored.Attempts)

	// Still redeemable with the right code; there is no lockout.
	_, err = svc.ExchangeCode("ana@example.com", sender.code)
	assert.NoError(t, err)
}

func TestExchangeCodeExpiredDeletesRecord(t *testing.T) {
	svc, codes, sender := newAuthFixture()

	_, err := svc.RequestCode("ana@example.com")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(24 * time.Hour) }

	_, err = svc.ExchangeCode("ana@example.com", sender.code)
	assert.True(t, httperr.Is(err, 401))

	_, ok := codes.Get("ana@example.com")
	assert.False(t, ok, "expired code deleted on detection")

	// The retry sees no record at all.
	_, err = svc.ExchangeCode("ana@example.com", sender.code)
	assert.True(t, httperr.Is(err, 401))
}

func TestExchangeCodeUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.ExchangeCode("nadie@example.com", "123456")
	assert.True(t, httperr.Is(err, 401))
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.VerifyToken("not-a-jwt")
	assert.True(t, httperr.Is(err, 401))
}

func TestRandomCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
