package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListTickets(c.UserContext(), caller, parseTicketQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketList(tickets))
}

// ListMyTickets GET /tickets/my.
func (h *TicketsHandler) ListMyTickets(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListMyTickets(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketList(tickets))
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), caller, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), caller, param(c, "id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// UpdateTicket PUT /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	ticket, err := h.service.UpdateTicket(c.UserContext(), caller, param(c, "id"), req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteTicket(c.UserContext(), caller, param(c, "id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "ticket deleted"})
}

// parseTicketQuery reads exact-match filters. Unknown values are kept and simply
// match nothing.
func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if status := utils.CopyString(c.Query("status")); status != "" {
		s := domain.TicketStatus(status)
		filter.Status = &s
	}
	if priority := utils.CopyString(c.Query("priority")); priority != "" {
		p := domain.TicketPriority(priority)
		filter.Priority = &p
	}
	return filter
}

// param copies a route parameter out of the pooled request buffer so it can be
// stored past the end of the request.
func param(c *fiber.Ctx, key string) string {
	return utils.CopyString(c.Params(key))
}

func requireIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthenticated("unauthorized")
	}
	return identity, nil
}
