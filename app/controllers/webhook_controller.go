package controllers

import (
	"github.com/sedastudio/boutique/app/services"
	"github.com/sedastudio/boutique/pkg/ctx"
	"github.com/sedastudio/boutique/pkg/httperr"
	"github.com/sedastudio/boutique/pkg/payment"
)

type WebhookController struct {
	orders  *services.OrderService
	gateway payment.Gateway
}

func NewWebhookController(orders *services.OrderService, gateway payment.Gateway) *WebhookController {
	return &WebhookController{orders: orders, gateway: gateway}
}

type webhookInput struct {
	OrderID   string `json:"orderId" validate:"required"`
	Status    string `json:"status" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature"`
}

// MercadoPago applies a payment-status callback. The signature travels in
// the X-Signature header (body field as fallback) and must match the
// shared secret exactly; a mismatch is a 401 before any order lookup.
func (c *WebhookController) MercadoPago(cc *ctx.Context) {
	var input webhookInput
	if !cc.BindJSON(&input) {
		return
	}

	signature := cc.Header("X-Signature")
	if signature == "" {
		signature = input.Signature
	}
	if !c.gateway.ValidateSignature(signature) {
		cc.Err(httperr.Unauthorized("Firma de MercadoPago inválida"))
		return
	}

	order, err := c.orders.UpdateStatus(cc.Context(), input.OrderID, input.Status, input.PaymentID)
	if err != nil {
		cc.Err(err)
		return
	}

	cc.Success(map[string]interface{}{
		"orderId": order.ID,
		"status":  order.Status,
	})
}
