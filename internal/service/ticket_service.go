package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/access"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// TicketService coordinates ticket workflows. Listing is always scoped by role;
// single-ticket operations consult the policy.
type TicketService struct {
	tickets    repository.TicketRepository
	policy     access.Policy
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Policy     access.Policy
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// TicketListFilter holds the optional listing filters a caller may supply.
type TicketListFilter struct {
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		policy:     deps.Policy,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket submits a ticket owned by the caller.
func (s *TicketService) CreateTicket(ctx context.Context, caller domain.Identity, input TicketCreateInput) (*domain.Ticket, error) {
	if !s.policy.CanCreateTicket(caller) {
		return nil, apperrors.NewForbidden("only clients can submit tickets")
	}
	title, description := input.Title, input.Description
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description are required")
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}
	if !priority.Valid() {
		return nil, apperrors.NewValidationError("priority must be low, medium or high")
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		OwnerID:     caller.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.ActorFrom(caller),
		Payload: events.TicketCreatedPayload{
			OwnerID:  ticket.OwnerID,
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})
	return ticket, nil
}

// ListTickets returns the role-scoped listing, newest first.
func (s *TicketService) ListTickets(ctx context.Context, caller domain.Identity, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := s.policy.ScopeTicketList(caller, repository.TicketFilter{
		Status:   filter.Status,
		Priority: filter.Priority,
	})
	tickets, err := s.tickets.List(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListMyTickets returns the tickets the caller owns, whatever the role.
func (s *TicketService) ListMyTickets(ctx context.Context, caller domain.Identity) ([]domain.Ticket, error) {
	owner := caller.ID
	tickets, err := s.tickets.List(ctx, repository.TicketFilter{OwnerID: &owner})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket fetches a single ticket.
func (s *TicketService) GetTicket(ctx context.Context, caller domain.Identity, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanReadTicket(caller, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// UpdateTicket applies a partial update. Any status may follow any other; repeating
// an update is harmless.
func (s *TicketService) UpdateTicket(ctx context.Context, caller domain.Identity, ticketID string, patch domain.TicketPatch) (*domain.Ticket, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	current, err := s.load(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanUpdateTicket(caller, current) {
		return nil, apperrors.NewForbidden("only agents can update tickets")
	}
	if patch.Empty() {
		return current, nil
	}

	updated, err := s.tickets.Update(ctx, current.ID, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: updated.ID,
		Actor:    events.ActorFrom(caller),
		Payload: events.TicketUpdatedPayload{
			OldStatus:   current.Status,
			NewStatus:   patch.Status,
			NewPriority: patch.Priority,
			AssigneeID:  patch.AssigneeID,
			Unassigned:  patch.ClearAssignee,
		},
	})
	return updated, nil
}

// DeleteTicket removes a ticket. Its comments are left in place.
func (s *TicketService) DeleteTicket(ctx context.Context, caller domain.Identity, ticketID string) error {
	ticket, err := s.load(ctx, ticketID)
	if err != nil {
		return err
	}
	if !s.policy.CanDeleteTicket(caller, ticket) {
		return apperrors.NewForbidden("access denied")
	}
	if err := s.tickets.Delete(ctx, ticket.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket")
		}
		return apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		Actor:    events.ActorFrom(caller),
	})
	return nil
}

// ListOpenAssigned returns open tickets that have an assignee.
func (s *TicketService) ListOpenAssigned(ctx context.Context) ([]domain.Ticket, error) {
	open := domain.TicketStatusOpen
	return s.tickets.List(ctx, repository.TicketFilter{Status: &open, HasAssignee: true})
}

func (s *TicketService) load(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	if _, err := uuid.Parse(ticketID); err != nil {
		return nil, apperrors.NewNotFound("ticket")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket")
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func validatePatch(patch domain.TicketPatch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		return apperrors.NewValidationError("status must be open, in_progress, resolved or closed")
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return apperrors.NewValidationError("priority must be low, medium or high")
	}
	if patch.AssigneeID != nil && !patch.ClearAssignee {
		if _, err := uuid.Parse(*patch.AssigneeID); err != nil {
			return apperrors.NewValidationError("assignedTo must be a user id")
		}
	}
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
