// FILE: internal/controller/middleware.go
package controller

import (
	"os"

	"featured-listing-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func parseBearerClaims(ctx *fiber.Ctx) (jwt.MapClaims, error) {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return nil, ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing or invalid authorization header"))
	}
	tokenStr := authHeader[7:]

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid or expired token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token claims"))
	}
	return claims, nil
}

// adminMiddleware guards operator routes.
// This logic assumes JWT claims have "role": "admin"
func adminMiddleware(ctx *fiber.Ctx) error {
	claims, err := parseBearerClaims(ctx)
	if claims == nil {
		return err
	}

	role, ok := claims["role"].(string)
	if !ok {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Role missing"))
	}
	if role != "admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Admins only"))
	}

	// Store user_id in context for handlers
	if userId, exists := claims["user_id"]; exists {
		ctx.Locals("user_id", userId)
	}

	return ctx.Next()
}

// vendorMiddleware guards purchase routes and pins the vendor identity the
// placement will be attributed to.
func vendorMiddleware(ctx *fiber.Ctx) error {
	claims, err := parseBearerClaims(ctx)
	if claims == nil {
		return err
	}

	role, _ := claims["role"].(string)
	if role != "vendor" && role != "admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Vendors only"))
	}

	vendorIdStr, _ := claims["user_id"].(string)
	vendorId, parseErr := uuid.Parse(vendorIdStr)
	if parseErr != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid vendor identity"))
	}

	ctx.Locals("vendor_id", vendorId)
	return ctx.Next()
}
