package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/access"
)

// EntryPath is where unauthenticated dashboard visitors are sent.
const EntryPath = "/"

// RouteGate guards dashboard pages using the cookie-carried token. It only decides
// page access; data scoping stays with the API handlers.
type RouteGate struct {
	tokens     *TokenManager
	cookieName string
	logger     *zap.Logger
}

// NewRouteGate constructs the gate.
func NewRouteGate(tokens *TokenManager, cookieName string, logger *zap.Logger) *RouteGate {
	return &RouteGate{tokens: tokens, cookieName: cookieName, logger: logger}
}

// Handle redirects visitors without a valid cookie to the entry page and visitors
// in the wrong area to their own area.
func (g *RouteGate) Handle(c *fiber.Ctx) error {
	token := c.Cookies(g.cookieName)
	if token == "" {
		return c.Redirect(EntryPath)
	}

	claims, err := g.tokens.ParseToken(token)
	if err != nil {
		g.logger.Warn("dashboard cookie rejected", zap.String("path", c.Path()), zap.Error(err))
		return c.Redirect(EntryPath)
	}

	if target := access.RedirectFor(claims.Role, c.Path()); target != "" {
		return c.Redirect(target)
	}

	c.Locals(identityKey, claims.Identity())
	return c.Next()
}
