package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
)

// TicketFilter narrows ticket listings.
type TicketFilter struct {
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
	Limit    int
	Offset   int
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListByRole returns every user holding the role, ordered by full name.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

// TicketRepository persists tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id int64) error
	// List returns tickets visible under the scope, newest first, with a
	// total count for pagination.
	List(ctx context.Context, scope domain.TicketScope, filter TicketFilter) ([]*domain.Ticket, int64, error)
	// ListOverdue returns unresolved, unescalated tickets whose priority
	// timeframe has elapsed as of now.
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.Ticket, error)
}

// CommentRepository persists ticket comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByTicket(ctx context.Context, ticketID int64) ([]*domain.Comment, error)
}

// ReportRepository answers the bounded aggregation queries the report
// engine composes into responses. Every query takes the caller's scope
// and a creation-time window so visibility is enforced at the same
// place the counting happens.
type ReportRepository interface {
	// WindowStats returns totals, resolved-or-closed counts, escalated
	// counts and the mean resolution hours for tickets in the window.
	WindowStats(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (domain.WindowStats, error)
	// CountByStatus returns per-status counts for tickets in the window.
	CountByStatus(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (map[domain.TicketStatus]int64, error)
	// CountByPriority returns per-priority counts for tickets in the window.
	CountByPriority(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (map[domain.TicketPriority]int64, error)
	// DailyTrends groups the window's tickets by creation day, ascending.
	DailyTrends(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) ([]domain.DailyTrend, error)
	// AgentWindowStats aggregates over tickets assigned to the agent.
	AgentWindowStats(ctx context.Context, agentID uuid.UUID, window domain.ReportWindow) (domain.WindowStats, error)
	// PriorityWindowStats aggregates over tickets of one priority level
	// in the window, under the scope.
	PriorityWindowStats(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow, priority domain.TicketPriority) (domain.WindowStats, error)
	// FirstResponseStats aggregates the gap between ticket creation and
	// its earliest comment, over window tickets with at least one comment.
	FirstResponseStats(ctx context.Context, scope domain.TicketScope, window domain.ReportWindow) (domain.FirstResponseStats, error)
}
