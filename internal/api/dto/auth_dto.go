package dto

import "github.com/spec-kit/helpdesk/internal/domain"

// RegisterRequest payload for new users.
type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned alongside the session cookie.
type LoginResponse struct {
	Token string      `json:"token"`
	Role  domain.Role `json:"role"`
	Name  string      `json:"name"`
}

// UserSummary is the public view of a registered user.
type UserSummary struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// RegisterResponse confirms a registration.
type RegisterResponse struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

// MessageResponse carries a bare status message; error bodies use the same shape.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserSummary maps a user.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{Name: user.Name, Email: user.Email, Role: user.Role}
}
