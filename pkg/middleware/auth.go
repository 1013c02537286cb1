package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sedastudio/boutique/pkg/response"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID     string
	Email      string
	ExternalID string
}

// IdentityResolver turns a bearer token into an Identity. The server wires
// one that tries the session JWT first and falls back to the external
// access-token lookup; tests plug in whatever they need.
type IdentityResolver func(ctx context.Context, token string) (Identity, error)

type identityKey struct{}

// IdentityFrom returns the authenticated identity injected by Auth.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// WithIdentity attaches an identity to the context. Exposed for tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// Auth guards a route group: it requires a Bearer token, resolves it to an
// identity and stores that identity in the request context. A missing or
// unresolvable token is a 401.
func Auth(resolve IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				response.Unauthorized(w, "Falta el token de autorización")
				return
			}

			identity, err := resolve(r.Context(), token)
			if err != nil {
				response.Unauthorized(w, "Token inválido")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
