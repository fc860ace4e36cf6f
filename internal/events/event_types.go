package events

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketDeleted EventType = "ticket_deleted"
	EventCommentAdded  EventType = "comment_added"
)

// Actor identifies who triggered an event.
type Actor struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// ActorFrom builds an Actor from a caller identity.
func ActorFrom(identity domain.Identity) Actor {
	return Actor{ID: identity.ID, Role: identity.Role}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	OwnerID  string                `json:"owner_id"`
	Priority domain.TicketPriority `json:"priority"`
	Title    string                `json:"title"`
}

// TicketUpdatedPayload lists only the fields the update supplied.
type TicketUpdatedPayload struct {
	OldStatus   domain.TicketStatus    `json:"old_status"`
	NewStatus   *domain.TicketStatus   `json:"new_status,omitempty"`
	NewPriority *domain.TicketPriority `json:"new_priority,omitempty"`
	AssigneeID  *string                `json:"assignee_id,omitempty"`
	Unassigned  bool                   `json:"unassigned,omitempty"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID   string      `json:"comment_id"`
	AuthorRole  domain.Role `json:"author_role"`
	BodyPreview string      `json:"body_preview"`
}
