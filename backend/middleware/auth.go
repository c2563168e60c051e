package middleware

import (
	"pylearn/backend/config"
	"pylearn/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}
