package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken("usr-1", "ana@example.com", "ext-9")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "ext-9", claims.ExternalID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	tok, err := GenerateToken("usr-1", "ana@example.com", "")
	require.NoError(t, err)

	_, err = ValidateToken(tok + "x")
	assert.Error(t, err)
}
