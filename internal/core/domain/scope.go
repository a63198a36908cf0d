package domain

import "github.com/google/uuid"

// TicketScope describes which tickets a principal may see. It is
// resolved once per request and passed unchanged to every query that
// request runs, so a single report never mixes visibility rules.
//
// Repositories translate the scope into a single predicate; a ticket
// matching both the creator and assignee arms is still counted once.
type TicketScope struct {
	// All matches every ticket (admin).
	All bool
	// UserID is the principal the remaining rules refer to.
	UserID uuid.UUID
	// IncludeAssigned widens the scope from created-by to
	// created-by OR assigned-to (agent).
	IncludeAssigned bool
}

// ScopeFor resolves the visibility scope for a principal. Unknown roles
// fall through to the most restrictive rule.
func ScopeFor(userID uuid.UUID, role Role) TicketScope {
	switch role {
	case RoleAdmin:
		return TicketScope{All: true}
	case RoleAgent:
		return TicketScope{UserID: userID, IncludeAssigned: true}
	case RoleUser:
		return TicketScope{UserID: userID}
	default:
		return TicketScope{UserID: userID}
	}
}

// Matches evaluates the scope as a predicate over a single ticket.
func (s TicketScope) Matches(t *Ticket) bool {
	if s.All {
		return true
	}
	if t.IsOwnedBy(s.UserID) {
		return true
	}
	return s.IncludeAssigned && t.IsAssignedTo(s.UserID)
}
