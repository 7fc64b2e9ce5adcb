package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
)

// RequireLoggedIn rejects requests without an identity.
func RequireLoggedIn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewUnauthorized("login required")
		}
		return c.Next()
	}
}

// RequireAdmin rejects requests unless the identity is an admin.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok || !identity.IsAdmin {
			return apperrors.NewUnauthorized("admin required")
		}
		return c.Next()
	}
}

// RequireAdminOrSelf passes admins and the user named by the route parameter.
func RequireAdminOrSelf(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("login required")
		}
		if !identity.IsAdmin && identity.Username != c.Params(param) {
			return apperrors.NewUnauthorized("admin or account owner required")
		}
		return c.Next()
	}
}
