package sidestore

import (
	"context"
	"time"

	"github.com/sedastudio/boutique/config"
	"github.com/sedastudio/boutique/pkg/httperr"
	"github.com/sedastudio/boutique/pkg/httpx"
)

// ExternalUser is an identity resolved from the side-store's auth API.
type ExternalUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserByAccessToken resolves an external access token against the
// side-store's auth endpoint. Used as the fallback path when a bearer
// token is not one of our own session JWTs.
func (s *Store) UserByAccessToken(ctx context.Context, token string) (ExternalUser, error) {
	authURL := config.SidestoreAuthURL()
	serviceKey := config.SidestoreServiceKey()
	if authURL == "" || serviceKey == "" {
		return ExternalUser{}, httperr.Unavailable("la verificación externa de identidad no está configurada")
	}

	resp, err := httpx.Get(authURL+"/auth/v1/user").
		Bearer(token).
		Header("apikey", serviceKey).
		Timeout(5 * time.Second).
		WithContext(ctx).
		Send()
	if err != nil {
		return ExternalUser{}, httperr.BadGateway("no pudimos verificar la identidad externa", err)
	}
	if !resp.OK() {
		return ExternalUser{}, httperr.Unauthorized("token inválido")
	}

	var user ExternalUser
	if err := resp.JSON(&user); err != nil {
		return ExternalUser{}, httperr.BadGateway("respuesta de identidad externa inválida", err)
	}
	if user.Email == "" {
		return ExternalUser{}, httperr.Unauthorized("token inválido")
	}
	return user, nil
}
