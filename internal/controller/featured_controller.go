// FILE: internal/controller/featured_controller.go
package controller

import (
	"featured-listing-be/internal/pkg/serverutils"
	"featured-listing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFeaturedController interface {
	RegisterRoutes(r fiber.Router)
	GetListings(ctx *fiber.Ctx) error
}

type featuredController struct {
	service service.IFeaturedService
}

func NewFeaturedController(service service.IFeaturedService) IFeaturedController {
	return &featuredController{service: service}
}

func (c *featuredController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/featured")
	h.Get("/listings", c.GetListings)
}

func (c *featuredController) GetListings(ctx *fiber.Ctx) error {
	res, err := c.service.ActiveListings(ctx.Context(), service.FeaturedFilter{
		ResourceType: ctx.Query("resource_type"),
		Scope:        ctx.Query("type"),
		State:        ctx.Query("state"),
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Featured listings", res))
}
