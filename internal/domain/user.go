package domain

import "time"

// Role enumerates the two kinds of caller.
type Role string

const (
	RoleClient Role = "client"
	RoleAgent  Role = "agent"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAgent
}

// User is a registered client or agent. Role is fixed at registration.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
