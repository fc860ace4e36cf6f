package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/service"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

// AuthHandler exposes login, registration and logout.
type AuthHandler struct {
	auth   *service.AuthService
	cookie auth.SessionCookie
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookie auth.SessionCookie) *AuthHandler {
	return &AuthHandler{auth: authService, cookie: cookie}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.RegisterResponse{
		Message: "user registered",
		User:    dto.NewUserSummary(user),
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewUnauthenticated("invalid credentials")
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.cookie.Set(c, result.Token, h.auth.TokenManager().TTL())
	return c.JSON(dto.LoginResponse{
		Token: result.Token,
		Role:  result.User.Role,
		Name:  result.User.Name,
	})
}

// Logout handles POST /auth/logout. Only the cookie is cleared.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookie.Clear(c)
	return c.JSON(dto.MessageResponse{Message: "logged out"})
}
