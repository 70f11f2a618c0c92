package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"muattrans/internal/handlers"
	"muattrans/internal/services"
)

func unauthorized(c *fiber.Ctx, text string) error {
	return c.Status(http.StatusUnauthorized).JSON(handlers.Envelope{
		Message: handlers.Message{Code: http.StatusUnauthorized, Text: text},
		Data:    nil,
		Type:    "AUTH",
	})
}

// AuthRequired is a Fiber middleware that rejects unauthenticated calls
// before any validation or domain logic runs, and places the actor identity
// in locals for handlers to thread into the services.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "authorization header is required")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "authorization header format must be 'Bearer <token>'")
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals("user_id", claims["user_id"])
		c.Locals("username", claims["username"])
		return c.Next()
	}
}
