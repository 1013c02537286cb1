package controllers

import (
	"github.com/sedastudio/boutique/app/services"
	"github.com/sedastudio/boutique/pkg/ctx"
	"github.com/sedastudio/boutique/pkg/httperr"
	"github.com/sedastudio/boutique/pkg/middleware"
)

type OrderController struct {
	orders   *services.OrderService
	products *services.ProductService
}

func NewOrderController(orders *services.OrderService, products *services.ProductService) *OrderController {
	return &OrderController{orders: orders, products: products}
}

type createOrderInput struct {
	ProductID string `json:"productId"`
}

// Create starts a checkout for one product. The product id may travel in
// the body or, for link-style checkouts, as a query parameter.
func (c *OrderController) Create(cc *ctx.Context) {
	identity, _ := middleware.IdentityFrom(cc.Context())

	var input createOrderInput
	if cc.Query("productId") != "" {
		input.ProductID = cc.Query("productId")
	} else if !cc.BindJSON(&input) {
		return
	}
	if input.ProductID == "" {
		cc.ValidationError(map[string]string{"productId": "Debes indicar productId"})
		return
	}

	created, err := c.orders.Create(cc.Context(), identity.UserID, input.ProductID, identity.ExternalID)
	if err != nil {
		cc.Err(err)
		return
	}

	cc.Created(map[string]interface{}{
		"orderId":          created.Order.ID,
		"paymentUrl":       created.Order.PaymentURL,
		"status":           created.Order.Status,
		"paymentReference": created.Order.PaymentReference,
		"preferenceId":     created.Order.PaymentReference,
		"product":          created.Product,
	})
}

// Show returns one order with its product. Foreign orders are a 403, not
// a 404: the caller learns the id exists but not its contents.
func (c *OrderController) Show(cc *ctx.Context) {
	identity, _ := middleware.IdentityFrom(cc.Context())

	order, err := c.orders.Get(cc.Param("orderId"))
	if err != nil {
		cc.Err(err)
		return
	}
	if order.UserID != identity.UserID {
		cc.Err(httperr.Forbidden("La orden no pertenece a tu cuenta"))
		return
	}

	product, err := c.products.Get(order.ProductID)
	if err != nil {
		cc.Err(err)
		return
	}

	cc.Success(map[string]interface{}{"order": order, "product": product})
}

// List returns the authenticated user's orders, newest first.
func (c *OrderController) List(cc *ctx.Context) {
	identity, _ := middleware.IdentityFrom(cc.Context())
	orders := c.orders.ListByUser(identity.UserID)
	cc.Success(map[string]interface{}{"items": orders, "total": len(orders)})
}
