package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// AssignmentService resolves the agents assigned to open tickets.
type AssignmentService struct {
	tickets *TicketService
	users   repository.UserRepository
	logger  *zap.Logger
}

// AssignmentDependencies bundles repositories.
type AssignmentDependencies struct {
	TicketService *TicketService
	UserRepo      repository.UserRepository
	Logger        *zap.Logger
}

// UnattendedTicket pairs an open ticket with its resolved assignee.
type UnattendedTicket struct {
	Ticket   domain.Ticket
	Assignee domain.User
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		tickets: deps.TicketService,
		users:   deps.UserRepo,
		logger:  logger,
	}
}

// UnattendedTickets lists open tickets that have an assignee and resolves each
// assignee. Tickets whose assignee no longer exists are skipped.
func (s *AssignmentService) UnattendedTickets(ctx context.Context) ([]UnattendedTicket, error) {
	tickets, err := s.tickets.ListOpenAssigned(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]UnattendedTicket, 0, len(tickets))
	for _, ticket := range tickets {
		if ticket.AssigneeID == nil {
			continue
		}
		assignee, err := s.users.GetByID(ctx, *ticket.AssigneeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				s.logger.Debug("assignee not found",
					zap.String("ticket_id", ticket.ID),
					zap.String("assignee_id", *ticket.AssigneeID))
				continue
			}
			return nil, err
		}
		result = append(result, UnattendedTicket{Ticket: ticket, Assignee: *assignee})
	}
	return result, nil
}
