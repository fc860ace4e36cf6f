package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/access"
	"github.com/spec-kit/helpdesk/internal/auth"
)

// DashboardHandler serves the entry page and the role areas behind the route gate.
type DashboardHandler struct {
	appName string
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(appName string) *DashboardHandler {
	return &DashboardHandler{appName: appName}
}

// Entry GET /.
func (h *DashboardHandler) Entry(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":     h.appName,
		"login":    "/auth/login",
		"register": "/auth/register",
	})
}

// Home GET /dashboard sends the caller to their own area.
func (h *DashboardHandler) Home(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return c.Redirect(auth.EntryPath)
	}
	return c.Redirect(access.HomeArea(identity.Role).Path())
}

// Area GET /dashboard/client and /dashboard/agent.
func (h *DashboardHandler) Area(area access.Area) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := auth.IdentityFromContext(c)
		if !ok {
			return c.Redirect(auth.EntryPath)
		}
		return c.JSON(fiber.Map{
			"area": area,
			"name": identity.DisplayName(),
			"role": access.NormalizeRole(identity.Role),
		})
	}
}
