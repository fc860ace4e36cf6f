package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// CommentsHandler manages ticket comment threads.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// ListComments GET /comments/:ticketId.
func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	comments, err := h.service.ListComments(c.UserContext(), caller, param(c, "ticketId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCommentList(comments))
}

// AddComment POST /comments/:ticketId.
func (h *CommentsHandler) AddComment(c *fiber.Ctx) error {
	caller, err := requireIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	comment, err := h.service.AddComment(c.UserContext(), caller, param(c, "ticketId"), req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCommentResponse(comment))
}
