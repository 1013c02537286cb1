package store

import (
	"strings"
	"sync"

	"github.com/sedastudio/boutique/app/models"
)

// Users is the user directory, keyed by ID with a secondary index by
// normalized email. The invariant of exactly one user per normalized email
// is enforced here: Upsert always rewrites the email index entry.
type Users struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string // normalized email → user ID
}

// NewUsers creates an empty directory.
func NewUsers() *Users {
	return &Users{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

// NormalizeEmail lower-cases and trims an email address. Every lookup and
// write in the directory goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Upsert writes the user and refreshes the email index.
func (s *Users) Upsert(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Email = NormalizeEmail(user.Email)
	s.byID[user.ID] = cloneUser(user)
	s.byEmail[user.Email] = user.ID
	return user
}

// GetByID returns the user with the given ID.
func (s *Users) GetByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return models.User{}, false
	}
	return cloneUser(u), true
}

// GetByEmail resolves a user through the normalized email index.
func (s *Users) GetByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[NormalizeEmail(email)]
	if !ok {
		return models.User{}, false
	}
	u, ok := s.byID[id]
	if !ok {
		return models.User{}, false
	}
	return cloneUser(u), true
}

func cloneUser(u models.User) models.User {
	clone := u
	if u.Address != nil {
		addr := *u.Address
		clone.Address = &addr
	}
	return clone
}
