package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sedastudio/boutique/pkg/httperr"
	"github.com/sedastudio/boutique/pkg/middleware"
)

func protectedEcho(t *testing.T) http.Handler {
	t.Helper()
	resolve := func(_ context.Context, token string) (middleware.Identity, error) {
		if token != "valid-token" {
			return middleware.Identity{}, httperr.Unauthorized("Token inválido")
		}
		return middleware.Identity{UserID: "usr-1", Email: "ana@example.com", ExternalID: "ext-9"}, nil
	}

	return middleware.Auth(resolve)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFrom(r.Context())
		require.True(t, ok)
		w.Header().Set("X-User", identity.UserID)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthAcceptsBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	protectedEcho(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "usr-1", rec.Header().Get("X-User"))
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()

	protectedEcho(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsNonBearerScheme(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	protectedEcho(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsUnresolvableToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()

	protectedEcho(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
