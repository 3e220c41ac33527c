package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-capture-service/internal/domain"
	apperrors "github.com/spec-kit/lead-capture-service/pkg/util"
)

// RequireAdmin ensures the authenticated principal carries the admin role.
// A valid token with the wrong role yields 403, never 200.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.User.Role != domain.RoleAdmin {
			return apperrors.NewForbidden("admin role required")
		}
		return c.Next()
	}
}
