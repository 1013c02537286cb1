package controllers

import (
	"github.com/sedastudio/boutique/app/models"
	"github.com/sedastudio/boutique/app/services"
	"github.com/sedastudio/boutique/pkg/collection"
	"github.com/sedastudio/boutique/pkg/ctx"
	"github.com/sedastudio/boutique/pkg/middleware"
)

type MeController struct {
	users    *services.UserService
	orders   *services.OrderService
	products *services.ProductService
}

func NewMeController(users *services.UserService, orders *services.OrderService, products *services.ProductService) *MeController {
	return &MeController{users: users, orders: orders, products: products}
}

// Show returns the authenticated user's profile.
func (c *MeController) Show(cc *ctx.Context) {
	identity, _ := middleware.IdentityFrom(cc.Context())

	user, err := c.users.GetByID(identity.UserID)
	if err != nil {
		cc.Err(err)
		return
	}
	cc.Success(map[string]interface{}{"user": user})
}

type profileInput struct {
	Name  *string `json:"name" validate:"nullable,min=2,max=120"`
	Phone *string `json:"phone" validate:"nullable,min=6,max=32"`
}

// UpdateProfile applies a partial profile edit. At least one editable
// field is required.
func (c *MeController) UpdateProfile(cc *ctx.Context) {
	identity, _ := middleware.IdentityFrom(cc.Context())

	var input profileInput
	if !cc.BindJSON(&input) {
		return
	}
	if input.Name == nil && input.Phone == nil {
		cc.ValidationError(map[string]string{"_": "Debes enviar al menos un campo editable"})
		return
	}

	user, err := c.users.UpdateProfile(identity.UserID, services.ProfileChanges{
		Name:  input.Name,
		Phone: input.Phone,
	})
	if err != nil {
		cc.Err(err)
		return
	}
	cc.Success(map[string]interface{}{"user": user})
}

type addressInput struct {
	Street    string `json:"street" validate:"required,min=2"`
	Number    string `json:"number" validate:"nullable,max=10"`
	City      string `json:"city" validate:"required,min=2"`
	State     string `json:"state" validate:"required,min=2"`
	ZipCode   string `json:"zipCode" validate:"required,min=3"`
	Country   string `json:"country" validate:"required,min=2"`
	Reference string `json:"reference" validate:"nullable,max=140"`
}

// UpdateAddress replaces the shipping address.
func (c *MeController) UpdateAddress(cc *ctx.Context) {
	identity, _ := middleware.IdentityFrom(cc.Context())

	var input addressInput
	if !cc.BindJSON(&input) {
		return
	}

	user, err := c.users.UpdateAddress(identity.UserID, models.Address{
		Street:    input.Street,
		Number:    input.Number,
		City:      input.City,
		State:     input.State,
		ZipCode:   input.ZipCode,
		Country:   input.Country,
		Reference: input.Reference,
	})
	if err != nil {
		cc.Err(err)
		return
	}
	cc.Success(map[string]interface{}{"user": user})
}

// Orders lists the user's orders, each paired with its product snapshot.
func (c *MeController) Orders(cc *ctx.Context) {
	identity, _ := middleware.IdentityFrom(cc.Context())

	orders := c.orders.ListByUser(identity.UserID)
	items := collection.Map(orders, func(order models.Order) map[string]interface{} {
		entry := map[string]interface{}{"order": order}
		if product, err := c.products.Get(order.ProductID); err == nil {
			entry["product"] = product
		}
		return entry
	})

	cc.Success(map[string]interface{}{"items": items, "total": len(items)})
}
