package dto

import (
	"time"

	"github.com/spec-kit/helpdesk/internal/domain"
)

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Message string `json:"message"`
}

// CommentResponse is the wire view of a comment.
type CommentResponse struct {
	ID         string      `json:"id"`
	TicketID   string      `json:"ticketId"`
	AuthorID   string      `json:"authorId"`
	AuthorName string      `json:"authorName"`
	AuthorRole domain.Role `json:"authorRole"`
	Message    string      `json:"message"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// NewCommentResponse maps a comment.
func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		TicketID:   c.TicketID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		AuthorRole: c.AuthorRole,
		Message:    c.Message,
		CreatedAt:  c.CreatedAt,
	}
}

// NewCommentList maps a thread.
func NewCommentList(comments []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
