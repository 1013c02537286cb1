package payment

import (
	"context"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/config"
	"github.com/sedastudio/boutique/pkg/httperr"
)

// Disabled is the gateway used when no provider credentials are
// configured. Checkout fails with 503 but the rest of the storefront
// (catalog, search, auth) keeps working, which is what local development
// without a Mercado Pago account needs. Webhook signatures still validate
// against the configured secret so the callback path stays testable.
type Disabled struct{}

func NewDisabled() *Disabled { return &Disabled{} }

func (Disabled) CreatePreference(_ context.Context, _ models.User, _ models.Product, _ string) (Preference, error) {
	return Preference{}, httperr.Unavailable("los pagos no están habilitados en este entorno")
}

func (Disabled) MapStatus(raw string) models.OrderStatus {
	switch raw {
	case "approved":
		return models.StatusPaid
	case "rejected":
		return models.StatusFailed
	default:
		return models.StatusPendingPayment
	}
}

func (Disabled) ValidateSignature(signature string) bool {
	return signature != "" && signature == config.MercadoPagoWebhookSecret()
}
