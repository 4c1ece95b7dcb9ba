package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rupee-vest/rupee_vest/internal/auth"
)

// JWTAuth validates the bearer token and stores the caller's identity in the
// request locals for downstream handlers.
func JWTAuth(tokens *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.Parse(strings.TrimSpace(authz[len("Bearer "):]))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		c.Locals("account_id", claims.AccountID)
		c.Locals("username", claims.Username)
		c.Locals("is_admin", claims.Admin)
		return c.Next()
	}
}

// AdminOnly rejects callers whose token does not carry the admin flag. It must
// run after JWTAuth.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if admin, _ := c.Locals("is_admin").(bool); !admin {
			return fiber.NewError(http.StatusForbidden, "admin only")
		}
		return c.Next()
	}
}
