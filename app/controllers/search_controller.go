package controllers

import (
	"strconv"

	"github.com/sedastudio/boutique/app/services"
	"github.com/sedastudio/boutique/pkg/ctx"
)

type SearchController struct {
	search *services.SearchService
}

func NewSearchController(search *services.SearchService) *SearchController {
	return &SearchController{search: search}
}

// Run answers a catalog search. q defaults to empty (browse), offset to 0
// and limit to 10; the service clamps out-of-range values.
func (c *SearchController) Run(cc *ctx.Context) {
	offset, _ := strconv.Atoi(cc.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(cc.DefaultQuery("limit", "10"))

	cc.Success(c.search.Run(cc.Query("q"), offset, limit))
}
