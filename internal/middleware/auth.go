package middleware

import (
	"catalog/pkg/auth"
	"catalog/pkg/httperror"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NewAuthMiddleware validates the Bearer session token on mutating routes
// and stores the authenticated username in the request context.
func NewAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get("Authorization"))

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return unauthorized(c, "Missing bearer token")
		}

		claims, err := auth.ValidateToken(jwtSecret, token)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		c.SetUserContext(auth.ContextWithUsername(userCtx, claims.Username))
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	err := httperror.Unauthorized(
		"catalog.auth.unauthorized",
		message,
		nil,
	)

	return c.Status(err.Status).JSON(fiber.Map{
		"success": false,
		"code":    err.Code,
		"message": err.Message,
	})
}
