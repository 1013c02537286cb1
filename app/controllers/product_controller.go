package controllers

import (
	"github.com/sedastudio/boutique/app/services"
	"github.com/sedastudio/boutique/pkg/ctx"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// List returns the full catalog.
func (c *ProductController) List(cc *ctx.Context) {
	products := c.products.List()
	cc.Success(map[string]interface{}{"items": products, "total": len(products)})
}

// Show returns one product by id.
func (c *ProductController) Show(cc *ctx.Context) {
	product, err := c.products.Get(cc.Param("id"))
	if err != nil {
		cc.Err(err)
		return
	}
	cc.Success(map[string]interface{}{"product": product})
}
