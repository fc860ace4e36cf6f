package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk/internal/access"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

const commentPreviewLen = 120

// CommentService manages ticket comment threads.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    *TicketService
	policy     access.Policy
	dispatcher events.Dispatcher
}

// CommentDependencies bundles collaborators for comment service.
type CommentDependencies struct {
	CommentRepo   repository.CommentRepository
	TicketService *TicketService
	Policy        access.Policy
	Dispatcher    events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	return &CommentService{
		comments:   deps.CommentRepo,
		tickets:    deps.TicketService,
		policy:     deps.Policy,
		dispatcher: deps.Dispatcher,
	}
}

// ListComments returns a ticket's thread oldest first.
func (s *CommentService) ListComments(ctx context.Context, caller domain.Identity, ticketID string) ([]domain.Comment, error) {
	if err := s.authorize(ctx, caller, ticketID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

// AddComment appends a message authored by the caller.
func (s *CommentService) AddComment(ctx context.Context, caller domain.Identity, ticketID, message string) (*domain.Comment, error) {
	if caller.ID == "" {
		return nil, apperrors.NewUnauthenticated("unauthorized")
	}
	if message == "" {
		return nil, apperrors.NewValidationError("message is required")
	}
	if err := s.authorize(ctx, caller, ticketID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		TicketID:   ticketID,
		AuthorID:   caller.ID,
		AuthorName: caller.DisplayName(),
		AuthorRole: access.NormalizeRole(caller.Role),
		Message:    message,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCommentAdded,
			TicketID:  ticketID,
			Actor:     events.ActorFrom(caller),
			Timestamp: time.Now().UTC(),
			Payload: events.CommentAddedPayload{
				CommentID:   comment.ID,
				AuthorRole:  comment.AuthorRole,
				BodyPreview: preview(comment.Message),
			},
		})
	}
	return comment, nil
}

// authorize loads the parent ticket only when ownership is enforced; otherwise any
// authenticated caller may use any thread, existing ticket or not.
func (s *CommentService) authorize(ctx context.Context, caller domain.Identity, ticketID string) error {
	if !s.policy.ChecksCommentTicket() {
		return nil
	}
	ticket, err := s.tickets.load(ctx, ticketID)
	if err != nil {
		return err
	}
	if !s.policy.CanAccessComments(caller, ticket) {
		return apperrors.NewForbidden("access denied")
	}
	return nil
}

func preview(message string) string {
	runes := []rune(message)
	if len(runes) <= commentPreviewLen {
		return message
	}
	return string(runes[:commentPreviewLen])
}
