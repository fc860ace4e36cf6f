package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest payload. Only supplied fields change.
type UpdateTicketRequest struct {
	Status     string         `json:"status"`
	Priority   string         `json:"priority"`
	AssignedTo NullableString `json:"assignedTo"`
}

// NullableString tells an absent JSON field apart from an explicit null.
type NullableString struct {
	Set   bool
	Null  bool
	Value string
}

// UnmarshalJSON is only invoked when the field is present.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Null = true
		return nil
	}
	return json.Unmarshal(data, &n.Value)
}

// Patch converts the request into a domain patch. Empty status or priority strings
// count as absent; a null or empty assignedTo clears the assignee.
func (r UpdateTicketRequest) Patch() domain.TicketPatch {
	var patch domain.TicketPatch
	if s := strings.TrimSpace(r.Status); s != "" {
		status := domain.TicketStatus(s)
		patch.Status = &status
	}
	if p := strings.TrimSpace(r.Priority); p != "" {
		priority := domain.TicketPriority(p)
		patch.Priority = &priority
	}
	if r.AssignedTo.Set {
		assignee := strings.TrimSpace(r.AssignedTo.Value)
		if r.AssignedTo.Null || assignee == "" {
			patch.ClearAssignee = true
		} else {
			patch.AssigneeID = &assignee
		}
	}
	return patch
}

// TicketResponse is the wire view of a ticket.
type TicketResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	OwnerID     string                `json:"ownerId"`
	AssigneeID  *string               `json:"assigneeId"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// NewTicketResponse maps a ticket.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		OwnerID:     t.OwnerID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
	}
}

// NewTicketList maps a listing; never nil so it encodes as [].
func NewTicketList(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}
