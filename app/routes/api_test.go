package routes_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/routes"
	"github.com/sedastudio/boutique/app/services"
	"github.com/sedastudio/boutique/app/store"
	"github.com/sedastudio/boutique/pkg/httperr"
	"github.com/sedastudio/boutique/pkg/middleware"
	"github.com/sedastudio/boutique/pkg/payment"
	"github.com/sedastudio/boutique/pkg/router"
	"github.com/sedastudio/boutique/pkg/sidestore"
	"github.com/sedastudio/boutique/pkg/testkit"
)

type silentSender struct{}

func (silentSender) SendLoginCode(string, string, time.Time) {}

type noopDurable struct{}

func (noopDurable) UpsertOrder(models.Order) error { return nil }
func (noopDurable) AppendEvent(string, string, string, map[string]interface{}, time.Time) error {
	return nil
}

type noopMailer struct{}

func (noopMailer) SendPaymentConfirmation(models.User, models.Order, models.Product) {}

type noopNotifier struct{}

func (noopNotifier) NotifyOrderPaid(string, string, float64) {}

// newTestHandler wires the full route table against in-memory stores. No
// session is resolvable, so protected routes answer 401 throughout.
func newTestHandler() http.Handler {
	inventory := store.NewInventory()
	inventory.Seed(store.CatalogSeed())

	userSvc := services.NewUserService(store.NewUsers())
	productSvc := services.NewProductService(inventory)
	authSvc := services.NewAuthService(userSvc, store.NewAuthCodes(), silentSender{})
	searchSvc := services.NewSearchService(inventory, nil)
	gateway := payment.NewDisabled()
	orderSvc := services.NewOrderService(
		store.NewOrders(), productSvc, userSvc, gateway,
		noopDurable{}, noopMailer{}, noopNotifier{}, nil,
	)

	r := router.New()
	routes.RegisterAPI(r, routes.Deps{
		Auth:     authSvc,
		Users:    userSvc,
		Products: productSvc,
		Orders:   orderSvc,
		Search:   searchSvc,
		Gateway:  gateway,
		Side:     sidestore.New(nil),
		Resolve: func(context.Context, string) (middleware.Identity, error) {
			return middleware.Identity{}, httperr.Unauthorized("Token inválido")
		},
	})
	return r.Handler()
}

func TestAPIScenarios(t *testing.T) {
	testkit.RunDir(t, newTestHandler(), "testdata")
}
