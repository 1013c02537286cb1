package store

import (
	"sync"

	"github.com/sedastudio/boutique/app/models"
)

// AuthCodes is the one-time login code ledger, keyed by normalized email.
// Last write wins: requesting a new code replaces any live one.
type AuthCodes struct {
	mu    sync.Mutex
	codes map[string]models.AuthCode
}

// NewAuthCodes creates an empty ledger.
func NewAuthCodes() *AuthCodes {
	return &AuthCodes{codes: make(map[string]models.AuthCode)}
}

// Save stores or replaces the code for its email.
func (s *AuthCodes) Save(code models.AuthCode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code.Email = NormalizeEmail(code.Email)
	s.codes[code.Email] = code
}

// Get returns the live code for the email, if any.
func (s *AuthCodes) Get(email string) (models.AuthCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[NormalizeEmail(email)]
	return c, ok
}

// Delete removes the entry for the email. Deleting an absent entry is a
// no-op.
func (s *AuthCodes) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.codes, NormalizeEmail(email))
}
