package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Health: GET /health
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
