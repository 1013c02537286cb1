package models

import "time"

// AuthCode is a short-lived one-time login code. The ledger keeps at most
// one live code per email; a new request overwrites the previous entry.
type AuthCode struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"` // 6 decimal digits
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (c AuthCode) Expired(now time.Time) bool { return c.ExpiresAt.Before(now) }
