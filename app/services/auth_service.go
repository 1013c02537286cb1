package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/config"
	"github.com/sedastudio/boutique/pkg/auth"
	"github.com/sedastudio/boutique/pkg/httperr"
)

// LoginCodeSender delivers a one-time code to the user. The production
// implementation (app/mailers) dispatches a queue job; tests capture the
// call.
type LoginCodeSender interface {
	SendLoginCode(email, code string, expiresAt time.Time)
}

// AuthService implements the passwordless flow: request a 6-digit code by
// email, exchange it for a 2-hour session JWT.
type AuthService struct {
	users  *UserService
	codes  *store.AuthCodes
	sender LoginCodeSender
	now    func() time.Time
}

// NewAuthService wires the auth flow.
func NewAuthService(users *UserService, codes *store.AuthCodes, sender LoginCodeSender) *AuthService {
	return &AuthService{users: users, codes: codes, sender: sender, now: time.Now}
}

// CodeRequest is the answer to a login-code request.
type CodeRequest struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TokenResponse is an issued session.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
}

// RequestCode ensures a user exists for the email, stores a fresh one-time
// code (replacing any live one, attempts reset to zero) and dispatches it
// by mail. Requesting again before expiry simply rotates the code.
func (s *AuthService) RequestCode(email string) (CodeRequest, error) {
	user := s.users.Ensure(email, "")

	code, err := randomCode()
	if err != nil {
		return CodeRequest{}, fmt.Errorf("auth: generate code: %w", err)
	}
	expiresAt := s.now().Add(config.LoginCodeTTL())

	s.codes.Save(models.AuthCode{
		Email:     user.Email,
		Code:      code,
		ExpiresAt: expiresAt,
		Attempts:  0,
	})

	s.sender.SendLoginCode(user.Email, code, expiresAt)

	return CodeRequest{UserID: user.ID, ExpiresAt: expiresAt}, nil
}

// ExchangeCode redeems a one-time code for a session token.
//
// Expired codes are deleted on detection, so the next attempt fails with
// "inexistent" rather than "expired". A mismatch increments the stored
// attempt counter; no lockout threshold is enforced.
func (s *AuthService) ExchangeCode(email, code string) (TokenResponse, error) {
	normalized := store.NormalizeEmail(email)

	record, ok := s.codes.Get(normalized)
	if !ok {
		return TokenResponse{}, httperr.Unauthorized("Código inválido o inexistente")
	}

	if record.Expired(s.now()) {
		s.codes.Delete(normalized)
		return TokenResponse{}, httperr.Unauthorized("El código expiró, solicitá uno nuevo")
	}

	if record.Code != code {
		record.Attempts++
		s.codes.Save(record)
		return TokenResponse{}, httperr.Unauthorized("Código incorrecto")
	}

	s.codes.Delete(normalized)

	user, err := s.users.GetByEmail(normalized)
	if err != nil {
		return TokenResponse{}, err
	}

	token, err := auth.GenerateToken(user.ID, user.Email, user.ExternalID)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("auth: sign token: %w", err)
	}

	return TokenResponse{Token: token, ExpiresIn: "2h"}, nil
}

// VerifyToken validates a session JWT, mapping every failure to 401.
func (s *AuthService) VerifyToken(token string) (*auth.Claims, error) {
	claims, err := auth.ValidateToken(token)
	if err != nil {
		return nil, httperr.Unauthorized("Token inválido")
	}
	return claims, nil
}

// randomCode draws a uniformly random 6-digit code.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
