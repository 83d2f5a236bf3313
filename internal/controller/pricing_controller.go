// FILE: internal/controller/pricing_controller.go
package controller

import (
	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/pkg/serverutils"
	"featured-listing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPricingController interface {
	RegisterRoutes(r fiber.Router)
	GetPricing(ctx *fiber.Ctx) error
	SetPricing(ctx *fiber.Ctx) error
}

type pricingController struct {
	service service.IPricingService
}

func NewPricingController(service service.IPricingService) IPricingController {
	return &pricingController{service: service}
}

func (c *pricingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/feature-pricing")
	h.Get("/", c.GetPricing)
	// Price edits are an admin concern even though the table itself is public.
	h.Post("/", adminMiddleware, c.SetPricing)
}

func (c *pricingController) GetPricing(ctx *fiber.Ctx) error {
	res, err := c.service.ListAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature pricing", res))
}

func (c *pricingController) SetPricing(ctx *fiber.Ctx) error {
	var req dto.SetPriceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetPrice(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Price updated", res))
}
