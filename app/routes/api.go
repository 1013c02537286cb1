// Package routes mounts the HTTP surface onto the router.
package routes

import (
	"net/http"
	"time"

	"github.com/sedastudio/boutique/app/controllers"
	"github.com/sedastudio/boutique/app/services"
	"github.com/sedastudio/boutique/pkg/ctx"
	"github.com/sedastudio/boutique/pkg/metrics"
	"github.com/sedastudio/boutique/pkg/middleware"
	"github.com/sedastudio/boutique/pkg/payment"
	"github.com/sedastudio/boutique/pkg/response"
	"github.com/sedastudio/boutique/pkg/router"
	"github.com/sedastudio/boutique/pkg/sidestore"
)

// Deps carries everything the HTTP surface needs. Built once at boot.
type Deps struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Products *services.ProductService
	Orders   *services.OrderService
	Search   *services.SearchService
	Gateway  payment.Gateway
	Side     *sidestore.Store
	Resolve  middleware.IdentityResolver
}

// RegisterAPI mounts every route. Middleware order matters: metrics first
// so it times everything, recovery before the logger so a panic still gets
// logged as a 500.
func RegisterAPI(r *router.Router, d Deps) {
	authController := controllers.NewAuthController(d.Auth)
	meController := controllers.NewMeController(d.Users, d.Orders, d.Products)
	productController := controllers.NewProductController(d.Products)
	orderController := controllers.NewOrderController(d.Orders, d.Products)
	searchController := controllers.NewSearchController(d.Search)
	webhookController := controllers.NewWebhookController(d.Orders, d.Gateway)
	timelineController := controllers.NewTimelineController(d.Side)

	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.Get("/metrics", "metrics", metrics.Handler().ServeHTTP)

	api := r.Group("/api")

	api.Post("/auth/request-code", "auth.request-code", ctx.Wrap(authController.RequestCode))
	api.Post("/auth/verify-code", "auth.verify-code", ctx.Wrap(authController.VerifyCode))

	api.Get("/products", "products.index", ctx.Wrap(productController.List))
	api.Get("/products/{id}", "products.show", ctx.Wrap(productController.Show))

	api.Get("/search", "search.run", ctx.Wrap(searchController.Run))

	api.Get("/pedidos", "orders.timeline", ctx.Wrap(timelineController.Show))

	api.Post("/webhook/mercadopago", "webhook.mercadopago", ctx.Wrap(webhookController.MercadoPago))

	protected := api.Group("", middleware.Auth(d.Resolve))
	protected.Get("/me", "me.show", ctx.Wrap(meController.Show))
	protected.Patch("/me", "me.update", ctx.Wrap(meController.UpdateProfile))
	protected.Put("/me/address", "me.address", ctx.Wrap(meController.UpdateAddress))
	protected.Get("/me/orders", "me.orders", ctx.Wrap(meController.Orders))

	protected.Post("/orders", "orders.create", ctx.Wrap(orderController.Create))
	protected.Get("/orders", "orders.index", ctx.Wrap(orderController.List))
	protected.Get("/orders/{orderId}", "orders.show", ctx.Wrap(orderController.Show))
}
