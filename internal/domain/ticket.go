package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Valid reports whether s is a known status. Any valid status may follow any other.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Valid reports whether p is a known priority.
func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// Ticket is the aggregate for support requests. OwnerID never changes after creation.
type Ticket struct {
	ID          string
	Title       string
	Description string
	Status      TicketStatus
	Priority    TicketPriority
	OwnerID     string
	AssigneeID  *string
	CreatedAt   time.Time
}

// TicketPatch enumerates the fields an update may change. Nil means unchanged.
// ClearAssignee removes the assignee and wins over AssigneeID.
type TicketPatch struct {
	Status        *TicketStatus
	Priority      *TicketPriority
	AssigneeID    *string
	ClearAssignee bool
}

// Empty reports whether the patch changes nothing.
func (p TicketPatch) Empty() bool {
	return p.Status == nil && p.Priority == nil && p.AssigneeID == nil && !p.ClearAssignee
}

// Apply returns a copy of t with the patch applied.
func (p TicketPatch) Apply(t Ticket) Ticket {
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	switch {
	case p.ClearAssignee:
		t.AssigneeID = nil
	case p.AssigneeID != nil:
		assignee := *p.AssigneeID
		t.AssigneeID = &assignee
	}
	return t
}
