// Package auth issues and validates the session tokens behind the
// passwordless login flow. There are no passwords anywhere: a verified
// one-time email code is exchanged for a signed JWT.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sedastudio/boutique/config"
)

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 2 * time.Hour

// Claims holds the typed JWT payload.
type Claims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	ExternalID string `json:"external_id,omitempty"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.AuthSecret())
}

// GenerateToken creates a signed session JWT for the given user.
func GenerateToken(userID, email, externalID string) (string, error) {
	claims := Claims{
		UserID:     userID,
		Email:      email,
		ExternalID: externalID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a session JWT.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
