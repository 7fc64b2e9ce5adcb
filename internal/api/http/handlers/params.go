package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ijpettengill/jobly/internal/auth"
	apperrors "github.com/ijpettengill/jobly/pkg/util/errorutil"
)

func parseBody(c *fiber.Ctx, out interface{ Validate() error }) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return out.Validate()
}

func idParam(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{name: c.Params(name)})
	}
	return id, nil
}

// queryParams returns the raw query values, rejecting keys outside allowed.
func queryParams(c *fiber.Ctx, allowed ...string) (map[string]string, error) {
	known := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		known[k] = true
	}

	values := map[string]string{}
	unknown := map[string]any{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if !known[k] {
			unknown[k] = "is not an allowed filter"
			return
		}
		values[k] = string(value)
	})
	if len(unknown) > 0 {
		return nil, apperrors.NewValidationError("invalid query", unknown)
	}
	return values, nil
}

func optionalInt(values map[string]string, key string) (*int, error) {
	raw, ok := values[key]
	if !ok {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid query", map[string]any{key: "must be an integer"})
	}
	return &v, nil
}

func optionalBool(values map[string]string, key string) (*bool, error) {
	raw, ok := values[key]
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid query", map[string]any{key: "must be true or false"})
	}
	return &v, nil
}

func optionalString(values map[string]string, key string) *string {
	raw, ok := values[key]
	if !ok || raw == "" {
		return nil
	}
	return &raw
}

func actor(c *fiber.Ctx) string {
	if identity, ok := auth.IdentityFromContext(c); ok {
		return identity.Username
	}
	return ""
}
