package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"taskmaster/internal/apperror"
	"taskmaster/internal/service"
)

const identityKey = "identity"

type TokenVerifier interface {
	VerifyToken(token string) (service.Identity, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer <token>"
// header and stores the caller's identity in locals for the handlers.
func RequireAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			return apperror.Auth("No token provided. Access denied.")
		}

		identity, err := verifier.VerifyToken(strings.TrimSpace(tokenString))
		if err != nil {
			return err
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// IdentityFrom returns the identity stored by RequireAuth.
func IdentityFrom(c *fiber.Ctx) (service.Identity, bool) {
	identity, ok := c.Locals(identityKey).(service.Identity)
	return identity, ok
}
