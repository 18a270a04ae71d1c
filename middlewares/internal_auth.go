package middlewares

import (
	"crypto/subtle"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// InternalAuth guards the back-office /user routes with the bearer token from
// INTERNAL_API_TOKEN.
func InternalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected := os.Getenv("INTERNAL_API_TOKEN")

		auth := c.Get("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || expected == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "INVALID_BEARER_TOKEN",
			})
		}

		return c.Next()
	}
}
