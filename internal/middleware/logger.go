package middleware

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskmaster/internal/apperror"
	"taskmaster/pkg/logger"
)

// RequestLogger recovers panics into a 500 and logs every request once it
// has been handled.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorLogger.Error("Recovered from panic",
					zap.String("panic", fmt.Sprint(r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = apperror.Internal(msgInternal, fmt.Errorf("panic: %v", r))
			}

			status := c.Response().StatusCode()
			if err != nil {
				status = statusOf(err)
			}
			logger.RequestLogger.Info("Request handled",
				zap.String("method", c.Method()),
				zap.String("url", c.OriginalURL()),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
			)
		}()
		return c.Next()
	}
}
