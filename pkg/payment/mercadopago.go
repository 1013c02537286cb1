package payment

import (
	"context"
	"fmt"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/config"
	"github.com/sedastudio/boutique/pkg/httperr"
)

// preferenceCreator is the single SDK call the gateway depends on. Tests
// stub it; production uses preference.NewClient.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago is the production Gateway backed by the Mercado Pago SDK.
type MercadoPago struct {
	prefs         preferenceCreator
	webhookSecret string
}

// NewMercadoPago builds the gateway from config. Fails when the access
// token is missing so a misconfigured deployment is caught at boot, not on
// the first checkout.
func NewMercadoPago() (*MercadoPago, error) {
	token := config.MercadoPagoAccessToken()
	if token == "" {
		return nil, fmt.Errorf("payment: MP_ACCESS_TOKEN is not configured")
	}

	cfg, err := mpconfig.New(token)
	if err != nil {
		return nil, fmt.Errorf("payment: mercadopago config: %w", err)
	}

	return &MercadoPago{
		prefs:         preference.NewClient(cfg),
		webhookSecret: config.MercadoPagoWebhookSecret(),
	}, nil
}

// CreatePreference registers a single-item checkout intent with Mercado
// Pago and returns the redirect target.
func (g *MercadoPago) CreatePreference(ctx context.Context, user models.User, product models.Product, orderID string) (Preference, error) {
	metadata := map[string]interface{}{
		"order_id":   orderID,
		"product_id": product.ID,
		"email":      user.Email,
	}

	req := preference.Request{
		ExternalReference: orderID,
		Items: []preference.ItemRequest{
			{
				ID:          product.ID,
				Title:       product.Title,
				Description: product.Summary,
				PictureURL:  product.HeroImage,
				Quantity:    1,
				CurrencyID:  product.Currency,
				UnitPrice:   product.Price,
			},
		},
		Payer:    buildPayer(user),
		Metadata: metadata,
	}

	if urls := buildBackURLs(); urls != nil {
		req.BackURLs = urls
		// Auto-return is only accepted by the provider over HTTPS.
		if strings.HasPrefix(urls.Success, "https://") {
			req.AutoReturn = "approved"
		}
	}
	if url := config.MercadoPagoNotificationURL(); url != "" {
		req.NotificationURL = url
	}

	resp, err := g.prefs.Create(ctx, req)
	if err != nil {
		return Preference{}, httperr.BadGateway("el proveedor de pagos rechazó la preferencia", err)
	}

	redirect := resp.InitPoint
	if redirect == "" {
		redirect = resp.SandboxInitPoint
	}
	if resp.ID == "" || redirect == "" {
		return Preference{}, httperr.BadGateway("el proveedor de pagos devolvió una preferencia inválida", nil)
	}

	return Preference{ID: resp.ID, RedirectURL: redirect, Metadata: metadata}, nil
}

// MapStatus applies the fixed provider-status table.
func (g *MercadoPago) MapStatus(raw string) models.OrderStatus {
	switch raw {
	case "approved":
		return models.StatusPaid
	case "rejected":
		return models.StatusFailed
	default:
		return models.StatusPendingPayment
	}
}

// ValidateSignature compares the webhook signature against the shared
// secret. Empty signatures always fail.
func (g *MercadoPago) ValidateSignature(signature string) bool {
	if signature == "" {
		return false
	}
	return signature == g.webhookSecret
}

func buildPayer(user models.User) *preference.PayerRequest {
	payer := &preference.PayerRequest{
		Email: user.Email,
		Name:  user.Name,
	}
	if user.Phone != "" {
		payer.Phone = &preference.PhoneRequest{Number: user.Phone}
	}
	if user.Address != nil {
		payer.Address = &preference.AddressRequest{
			StreetName:   user.Address.Street,
			StreetNumber: user.Address.Number,
			ZipCode:      user.Address.ZipCode,
		}
	}
	return payer
}

func buildBackURLs() *preference.BackURLsRequest {
	urls := &preference.BackURLsRequest{
		Success: config.MercadoPagoSuccessURL(),
		Failure: config.MercadoPagoFailureURL(),
		Pending: config.MercadoPagoPendingURL(),
	}
	if urls.Success == "" && urls.Failure == "" && urls.Pending == "" {
		return nil
	}
	return urls
}
