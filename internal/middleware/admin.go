package middleware

import (
	"crypto/subtle"
	"strings"

	"roadmap-checkup/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
)

// AdminOnly guards maintenance routes with a shared bearer token. An empty
// token disables the route.
func AdminOnly(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "ADMIN_DISABLED",
				Message: "Admin routes are disabled",
				Status:  fiber.StatusForbidden,
			})
		}

		authHeader := c.Get(AuthorizationHeader)
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Bearer token is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		given := strings.TrimPrefix(authHeader, BearerSchema)
		if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			logger.Get().Warn("Rejected admin request", zap.String("path", c.Path()), zap.String("ip", c.IP()))
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Bearer token is invalid",
				Status:  fiber.StatusUnauthorized,
			})
		}
		return c.Next()
	}
}
