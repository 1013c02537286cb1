// Package payment wraps the checkout provider behind a small Gateway
// interface so the order pipeline never touches provider SDK types
// directly.
package payment

import (
	"context"

	"github.com/sedastudio/boutique/app/models"
)

// Preference is a provider-issued checkout intent: an identifier plus the
// redirect URL the buyer completes payment at.
type Preference struct {
	ID          string
	RedirectURL string
	Metadata    map[string]interface{}
}

// Gateway is the contract the order pipeline depends on.
type Gateway interface {
	// CreatePreference registers a checkout intent for exactly one unit of
	// product on behalf of user. Implementations must return an error when
	// the provider rejects the request or answers with an incomplete
	// response (missing id or redirect URL).
	CreatePreference(ctx context.Context, user models.User, product models.Product, orderID string) (Preference, error)

	// MapStatus translates the provider's raw payment status into an order
	// status. Unknown statuses map to pending-payment.
	MapStatus(raw string) models.OrderStatus

	// ValidateSignature checks the webhook signature header against the
	// configured shared secret. Exact string match; the provider sends the
	// secret back verbatim on sandbox integrations.
	ValidateSignature(signature string) bool
}
