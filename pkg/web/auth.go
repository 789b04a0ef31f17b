package web

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/goflowd/flowd/pkg/identity"
)

const principalLocalsKey = "principal"

// NewAuthMiddleware resolves the acting principal from HTTP basic auth
// against the identity manager and stores it in the request locals. The
// runtime itself never authenticates; this is the boundary where an external
// identity system would plug in.
func NewAuthMiddleware(manager identity.Manager) fiber.Handler {
	return func(c fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Basic ") {
			return unauthorized(c, "missing basic auth credentials")
		}

		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
		if err != nil {
			return unauthorized(c, "malformed basic auth credentials")
		}

		id, secret, found := strings.Cut(string(decoded), ":")
		if !found {
			return unauthorized(c, "malformed basic auth credentials")
		}

		principal, err := manager.Authenticate(id, secret)
		if err != nil {
			return unauthorized(c, "bad credentials")
		}

		c.Locals(principalLocalsKey, principal)

		return c.Next()
	}
}

func currentPrincipal(c fiber.Ctx) (identity.Principal, bool) {
	principal, ok := c.Locals(principalLocalsKey).(identity.Principal)

	return principal, ok
}
