// Package controllers holds the HTTP handlers. They are thin glue: bind
// and validate the request, call one service, translate the result.
package controllers

import (
	"net/http"

	"github.com/sedastudio/boutique/app/services"
	"github.com/sedastudio/boutique/pkg/ctx"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type requestCodeInput struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestCode starts the passwordless flow: a one-time code is mailed to
// the address. Always 202; the code travels by mail, never in the body.
func (c *AuthController) RequestCode(cc *ctx.Context) {
	var input requestCodeInput
	if !cc.BindJSON(&input) {
		return
	}

	result, err := c.auth.RequestCode(input.Email)
	if err != nil {
		cc.Err(err)
		return
	}

	cc.JSON(http.StatusAccepted, map[string]interface{}{
		"message":   "Enviamos un código a tu email",
		"expiresAt": result.ExpiresAt,
		"userId":    result.UserID,
	})
}

type verifyCodeInput struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,digits=6"`
}

// VerifyCode exchanges a one-time code for a session token.
func (c *AuthController) VerifyCode(cc *ctx.Context) {
	var input verifyCodeInput
	if !cc.BindJSON(&input) {
		return
	}

	token, err := c.auth.ExchangeCode(input.Email, input.Code)
	if err != nil {
		cc.Err(err)
		return
	}

	cc.Success(token)
}
