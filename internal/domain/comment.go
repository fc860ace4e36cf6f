package domain

import "time"

// Comment is an append-only message in a ticket thread. TicketID is a plain
// reference; deleting the ticket leaves its comments in place.
type Comment struct {
	ID         string
	TicketID   string
	AuthorID   string
	AuthorName string
	AuthorRole Role
	Message    string
	CreatedAt  time.Time
}
