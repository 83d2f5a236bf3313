// FILE: internal/controller/admin_controller.go
package controller

import (
	"os"
	"time"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/pkg/serverutils"
	"featured-listing-be/internal/service"
	ws "featured-listing-be/internal/websocket"
	"featured-listing-be/pkg/admin/mapper"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	ServeFeed(ctx *fiber.Ctx) error
	GetOverview(ctx *fiber.Ctx) error
	GetFeatures(ctx *fiber.Ctx) error
	CreateFeature(ctx *fiber.Ctx) error
	ExtendFeature(ctx *fiber.Ctx) error
	UnfeatureFeature(ctx *fiber.Ctx) error
	DeleteFeature(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
	feedHub *ws.Hub
}

func NewAdminController(service service.IAdminService, feedHub *ws.Hub) IAdminController {
	return &adminController{
		service: service,
		feedHub: feedHub,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/features")

	// Live purchase feed. Browsers cannot set Authorization on a websocket
	// handshake, so this route authenticates itself from the query token.
	h.Get("/feed", c.ServeFeed)

	h.Use(adminMiddleware) // Enforce Admin Middleware for all routes below

	// Dashboard
	h.Get("/overview", c.GetOverview)

	// Placement management
	h.Get("/list", c.GetFeatures)
	h.Post("/", c.CreateFeature)
	h.Patch("/:id/extend", c.ExtendFeature)
	h.Post("/:id/unfeature", c.UnfeatureFeature)
	h.Delete("/:id", c.DeleteFeature)
}

// ServeFeed upgrades an admin dashboard connection onto the feed hub.
func (c *adminController) ServeFeed(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing token (Query 'token' or Header 'Authorization')"))
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token claims"))
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Admins only"))
	}

	adminIdStr, _ := claims["user_id"].(string)
	adminId, err := uuid.Parse(adminIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid admin identity"))
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			ws.ServeWs(c.feedHub, conn, adminId)
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}

func (c *adminController) GetOverview(ctx *fiber.Ctx) error {
	res, err := c.service.Overview(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature overview", res))
}

func (c *adminController) GetFeatures(ctx *fiber.Ctx) error {
	filter := service.ListFeaturesFilter{
		Status:       ctx.Query("status"),
		ResourceType: ctx.Query("resource_type"),
		Query:        ctx.Query("q"),
	}
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.service.List(ctx.Context(), filter, page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature list", res))
}

func (c *adminController) CreateFeature(ctx *fiber.Ctx) error {
	var req dto.AdminCreateFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	record, err := c.service.CreateFeature(ctx.Context(), req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Feature created", mapper.RecordToResponse(record, time.Now())))
}

func (c *adminController) ExtendFeature(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid feature id"))
	}

	var req dto.ExtendFeatureRequest
	if err := ctx.BodyParser(&req); err != nil && len(ctx.Body()) > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	record, err := c.service.ExtendFeature(ctx.Context(), id, req.Days)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature extended", mapper.RecordToResponse(record, time.Now())))
}

func (c *adminController) UnfeatureFeature(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid feature id"))
	}

	record, err := c.service.UnfeatureFeature(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature unfeatured", mapper.RecordToResponse(record, time.Now())))
}

func (c *adminController) DeleteFeature(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid feature id"))
	}

	if err := c.service.DeleteFeature(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Feature deleted", nil))
}
