package models

import "time"

// Address is a shipping address attached to a user profile.
type Address struct {
	Street    string `json:"street"`
	Number    string `json:"number,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	Reference string `json:"reference,omitempty"`
}

// User is a shopper account. Email is stored normalized (trimmed,
// lower-cased) and is unique across the directory.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    *Address  `json:"address,omitempty"`
	ExternalID string    `json:"externalId,omitempty"` // side-store identity link
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
