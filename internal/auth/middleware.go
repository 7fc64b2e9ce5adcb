package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ijpettengill/jobly/internal/domain"
)

const identityKey = "auth_identity"

// AuthMiddleware decodes bearer tokens into a request identity.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Authenticate stores the identity of a valid bearer token in the request context.
// Missing or invalid tokens leave the context empty and never fail the request;
// RequireLoggedIn and RequireAdmin enforce access.
func (m *AuthMiddleware) Authenticate(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return c.Next()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		m.logger.Debug("ignoring non-bearer authorization header")
		return c.Next()
	}

	identity, err := m.tokens.Parse(strings.TrimSpace(parts[1]))
	if err != nil {
		m.logger.Debug("ignoring invalid bearer token", zap.Error(err))
		return c.Next()
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*domain.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
