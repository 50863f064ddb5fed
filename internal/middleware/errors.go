package middleware

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskmaster/internal/apperror"
	"taskmaster/internal/models"
	"taskmaster/pkg/logger"
)

const msgInternal = "Internal server error"

// ErrorHandler turns any handler error into the response envelope. In
// production the cause of a 500 is logged but never sent to the client.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, msg := resolveError(err, production)
		if status >= http.StatusInternalServerError {
			logger.ErrorLogger.Error("Request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(models.Response{Success: false, Error: msg})
	}
}

func statusOf(err error) int {
	status, _ := resolveError(err, true)
	return status
}

func resolveError(err error, production bool) (int, string) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		if appErr.Kind != apperror.KindInternal {
			return appErr.Kind.Status(), appErr.Message
		}
		if !production {
			return http.StatusInternalServerError, err.Error()
		}
		if appErr.Message != "" {
			return http.StatusInternalServerError, appErr.Message
		}
		return http.StatusInternalServerError, msgInternal
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code >= http.StatusInternalServerError && production {
			return fiberErr.Code, msgInternal
		}
		return fiberErr.Code, fiberErr.Message
	}

	if production {
		return http.StatusInternalServerError, msgInternal
	}
	return http.StatusInternalServerError, err.Error()
}
