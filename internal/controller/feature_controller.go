// FILE: internal/controller/feature_controller.go
package controller

import (
	"time"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/serverutils"
	"featured-listing-be/internal/service"
	"featured-listing-be/pkg/admin/mapper"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeatureController interface {
	RegisterRoutes(r fiber.Router)
	VerifyPurchase(ctx *fiber.Ctx) error
}

type featureController struct {
	payments service.IPaymentService
}

func NewFeatureController(payments service.IPaymentService) IFeatureController {
	return &featureController{payments: payments}
}

func (c *featureController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/featurelisting")
	h.Post("/:provider/:resourceType/verify/:transactionRef", vendorMiddleware, c.VerifyPurchase)
}

// VerifyPurchase confirms a gateway charge and activates the placement. Safe
// to call repeatedly with the same reference; retries return the original
// placement rather than a second one.
func (c *featureController) VerifyPurchase(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	transactionRef := ctx.Params("transactionRef")

	resourceType := entity.ResourceType(ctx.Params("resourceType"))
	if !resourceType.Valid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Unknown resource type"))
	}

	var req dto.VerifyPurchaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	vendorId := ctx.Locals("vendor_id").(uuid.UUID)

	record, err := c.payments.CompleteFeaturePurchase(ctx.Context(), provider, transactionRef, service.CreateFeatureParams{
		ResourceType: resourceType,
		ResourceId:   req.ResourceId,
		VendorId:     vendorId,
		Scope:        entity.FeatureScope(req.FeatureType),
		ScopeState:   req.State,
		DurationDays: entity.DurationCode(req.Duration).Days(),
	})
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Feature activated", mapper.RecordToResponse(record, time.Now())))
}
