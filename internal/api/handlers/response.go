package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskmaster/internal/apperror"
	"taskmaster/internal/middleware"
	"taskmaster/internal/models"
	"taskmaster/internal/service"
	"taskmaster/pkg/logger"
)

func respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(models.Response{Success: true, Data: data, Message: message})
}

// parseBody decodes the request body into out. An empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		logger.SecurityLogger.Warn("Bad request body", zap.String("path", c.Path()), zap.Error(err))
		return apperror.Validation("Invalid request body").WithCause(err)
	}
	return nil
}

// identity is only called behind RequireAuth.
func identity(c *fiber.Ctx) (service.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return service.Identity{}, apperror.Auth("Authentication failed.")
	}
	return id, nil
}
