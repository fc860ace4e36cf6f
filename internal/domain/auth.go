package domain

// Identity is the caller resolved from a verified bearer token. It is built from the
// token claims alone and never re-read from the user store.
type Identity struct {
	ID    string
	Role  Role
	Name  string
	Email string
}

// DisplayName returns the name used to attribute comments.
func (i Identity) DisplayName() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.Email != "":
		return i.Email
	default:
		return "User"
	}
}
