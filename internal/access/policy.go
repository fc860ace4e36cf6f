// Package access holds the role rules shared by the route gate, the HTTP handlers and
// the ticket/comment services: which dashboard area a role lives in, which tickets a
// listing may return, and which single tickets a caller may touch.
package access

import (
	"strings"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// Area is a top-level section of the dashboard.
type Area string

const (
	AreaClient Area = "client"
	AreaAgent  Area = "agent"
)

// DashboardPrefix is the path prefix guarded by the route gate.
const DashboardPrefix = "/dashboard"

// NormalizeRole maps absent or unknown roles to client, the least-privileged role.
func NormalizeRole(role domain.Role) domain.Role {
	if role == domain.RoleAgent {
		return domain.RoleAgent
	}
	return domain.RoleClient
}

// IsAgent reports whether the identity carries agent privileges.
func IsAgent(id domain.Identity) bool {
	return NormalizeRole(id.Role) == domain.RoleAgent
}

// HomeArea returns the dashboard area a role belongs to.
func HomeArea(role domain.Role) Area {
	if NormalizeRole(role) == domain.RoleAgent {
		return AreaAgent
	}
	return AreaClient
}

// Path returns the dashboard path of an area.
func (a Area) Path() string {
	return DashboardPrefix + "/" + string(a)
}

// AreaForPath returns the area a request path falls in, if any.
func AreaForPath(path string) (Area, bool) {
	for _, area := range []Area{AreaClient, AreaAgent} {
		p := area.Path()
		if path == p || strings.HasPrefix(path, p+"/") {
			return area, true
		}
	}
	return "", false
}

// RedirectFor returns where a role must be sent when it requests path. An empty
// string means the request may proceed.
func RedirectFor(role domain.Role, path string) string {
	area, ok := AreaForPath(path)
	if !ok {
		return ""
	}
	home := HomeArea(role)
	if area == home {
		return ""
	}
	return home.Path()
}

// Policy decides per-ticket access. With EnforceOwnership off, single-ticket and
// comment operations are open to any authenticated caller.
type Policy struct {
	EnforceOwnership bool
}

// ScopeTicketList narrows a listing to what the caller may see. Clients are pinned to
// their own tickets whatever owner filter was supplied; agents see every owner.
func (p Policy) ScopeTicketList(caller domain.Identity, filter repository.TicketFilter) repository.TicketFilter {
	if IsAgent(caller) {
		return filter
	}
	owner := caller.ID
	filter.OwnerID = &owner
	return filter
}

// CanCreateTicket reports whether the caller may submit a ticket.
func (p Policy) CanCreateTicket(caller domain.Identity) bool {
	if !p.EnforceOwnership {
		return true
	}
	return !IsAgent(caller)
}

// CanReadTicket reports whether the caller may read a single ticket.
func (p Policy) CanReadTicket(caller domain.Identity, ticket *domain.Ticket) bool {
	if !p.EnforceOwnership || IsAgent(caller) {
		return true
	}
	return ticket.OwnerID == caller.ID
}

// CanUpdateTicket reports whether the caller may change status, priority or assignee.
func (p Policy) CanUpdateTicket(caller domain.Identity, _ *domain.Ticket) bool {
	if !p.EnforceOwnership {
		return true
	}
	return IsAgent(caller)
}

// CanDeleteTicket reports whether the caller may delete a ticket.
func (p Policy) CanDeleteTicket(caller domain.Identity, ticket *domain.Ticket) bool {
	return p.CanReadTicket(caller, ticket)
}

// ChecksCommentTicket reports whether comment access must load the parent ticket.
func (p Policy) ChecksCommentTicket() bool {
	return p.EnforceOwnership
}

// CanAccessComments reports whether the caller may read or post on a ticket's thread.
func (p Policy) CanAccessComments(caller domain.Identity, ticket *domain.Ticket) bool {
	return p.CanReadTicket(caller, ticket)
}
