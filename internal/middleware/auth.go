package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/livemarket/internal/config"
	"github.com/example/livemarket/internal/utils"
)

const userContextKey = "currentUser"

// AuthMiddleware validates JWT tokens and loads the session claims into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userContextKey, claims)
		return c.Next()
	}
}

// RequireAdmin rejects authenticated sessions that lack the admin flag.
// Must run after AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := GetCurrentUser(c)
		if !ok || !claims.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// GetCurrentUser extracts the authenticated session claims from context.
func GetCurrentUser(c *fiber.Ctx) (*utils.TokenClaims, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return nil, false
	}

	if claims, ok := value.(*utils.TokenClaims); ok {
		return claims, true
	}

	return nil, false
}
