package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/httperr"
)

// UserService owns the user directory. Emails are normalized on every
// path so there is exactly one user per lower-cased, trimmed address.
type UserService struct {
	users *store.Users
}

// NewUserService creates the service over the user store.
func NewUserService(users *store.Users) *UserService {
	return &UserService{users: users}
}

// Ensure returns the user for the email, creating one if absent. When
// externalID is non-empty and differs from the stored link, the link is
// updated (the external identity provider wins).
func (s *UserService) Ensure(email, externalID string) models.User {
	normalized := store.NormalizeEmail(email)

	if existing, ok := s.users.GetByEmail(normalized); ok {
		if externalID != "" && existing.ExternalID != externalID {
			existing.ExternalID = externalID
			existing.UpdatedAt = time.Now().UTC()
			s.users.Upsert(existing)
		}
		return existing
	}

	now := time.Now().UTC()
	id := externalID
	if id == "" {
		id = uuid.NewString()
	}
	user := models.User{
		ID:         id,
		Email:      normalized,
		ExternalID: externalID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.users.Upsert(user)
	return user
}

// GetByID returns the user or NotFound.
func (s *UserService) GetByID(userID string) (models.User, error) {
	user, ok := s.users.GetByID(userID)
	if !ok {
		return models.User{}, httperr.NotFound("Usuario no encontrado")
	}
	return user, nil
}

// GetByEmail returns the user for the normalized email or NotFound.
func (s *UserService) GetByEmail(email string) (models.User, error) {
	user, ok := s.users.GetByEmail(email)
	if !ok {
		return models.User{}, httperr.NotFound("Usuario no encontrado para ese email")
	}
	return user, nil
}

// ProfileChanges carries the optional profile fields a user may update.
// Nil pointers leave the stored value untouched.
type ProfileChanges struct {
	Name  *string
	Phone *string
}

// UpdateProfile applies partial profile changes. Email and id are immutable.
func (s *UserService) UpdateProfile(userID string, changes ProfileChanges) (models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return models.User{}, err
	}

	if changes.Name != nil {
		user.Name = *changes.Name
	}
	if changes.Phone != nil {
		user.Phone = *changes.Phone
	}
	user.UpdatedAt = time.Now().UTC()

	s.users.Upsert(user)
	return user, nil
}

// UpdateAddress replaces the user's shipping address.
func (s *UserService) UpdateAddress(userID string, address models.Address) (models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return models.User{}, err
	}

	addr := address
	user.Address = &addr
	user.UpdatedAt = time.Now().UTC()

	s.users.Upsert(user)
	return user, nil
}
