package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"agiliza_backend/pkg/utils/jwt"
)

// SessionCookie carries the operator token for server-rendered admin
// pages; API clients may also send it as a bearer header.
const SessionCookie = "admin_session"

// AuthMiddleware guards admin API routes. Valid claims land in
// c.Locals("user").
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := resolveClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Não autenticado",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// PageAuthMiddleware guards server-rendered admin pages: an anonymous
// visitor is redirected to the login page instead of getting a JSON 401.
func PageAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := resolveClaims(c)
		if err != nil {
			return c.Redirect("/admin/login", fiber.StatusFound)
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

func resolveClaims(c *fiber.Ctx) (*jwt.Claims, error) {
	token := ""

	if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	} else if cookie := c.Cookies(SessionCookie); cookie != "" {
		token = cookie
	}

	if token == "" {
		return nil, fiber.ErrUnauthorized
	}

	return jwt.ValidateToken(token)
}
