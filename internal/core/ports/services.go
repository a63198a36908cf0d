package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
)

// RegisterParams is the input for user registration.
type RegisterParams struct {
	FullName string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

// CreateTicketParams is the input for ticket creation.
type CreateTicketParams struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// UpdateTicketParams carries the optional fields of a ticket update.
// Nil means "leave unchanged".
type UpdateTicketParams struct {
	Title       *string
	Description *string
	Priority    *domain.TicketPriority
	Status      *domain.TicketStatus
	AssignedTo  *uuid.UUID
}

// TicketService implements the ticket lifecycle. Every method receives
// the acting principal; visibility and mutation rules derive from the
// principal's role.
type TicketService interface {
	CreateTicket(ctx context.Context, actor *domain.User, params CreateTicketParams) (*domain.Ticket, error)
	GetTicket(ctx context.Context, actor *domain.User, id int64) (*domain.Ticket, error)
	ListTickets(ctx context.Context, actor *domain.User, filter TicketFilter) ([]*domain.Ticket, int64, error)
	UpdateTicket(ctx context.Context, actor *domain.User, id int64, params UpdateTicketParams) (*domain.Ticket, error)
	DeleteTicket(ctx context.Context, actor *domain.User, id int64) error
}

// CommentService manages ticket comments.
type CommentService interface {
	AddComment(ctx context.Context, actor *domain.User, ticketID int64, content string) (*domain.Comment, error)
	ListComments(ctx context.Context, actor *domain.User, ticketID int64) ([]*domain.Comment, error)
}

// CustomRangeParams bounds the custom time range report. Dates are
// YYYY-MM-DD strings as received on the wire; the service parses and
// validates them.
type CustomRangeParams struct {
	StartDate string
	EndDate   string
}

// ReportService computes the management reports. All methods require an
// admin actor and answer from live data.
type ReportService interface {
	WeeklySummary(ctx context.Context, actor *domain.User) (*domain.WeeklyStats, error)
	DailyTrends(ctx context.Context, actor *domain.User) ([]domain.DailyTrend, error)
	AgentPerformance(ctx context.Context, actor *domain.User) ([]domain.AgentPerformance, error)
	PriorityAnalysis(ctx context.Context, actor *domain.User) ([]domain.PriorityStats, error)
	StatusDistribution(ctx context.Context, actor *domain.User) ([]domain.StatusSlice, error)
	ResponseTimes(ctx context.Context, actor *domain.User) (*domain.ResponseTimeMetrics, error)
	CustomTimeRange(ctx context.Context, actor *domain.User, params CustomRangeParams) (*domain.RangeStats, error)
}

// Notifier sends out-of-band notifications about ticket activity.
type Notifier interface {
	NotifyTicketCreated(ctx context.Context, ticket *domain.Ticket) error
	NotifyTicketUpdated(ctx context.Context, ticket *domain.Ticket) error
	NotifyTicketEscalated(ctx context.Context, ticket *domain.Ticket) error
}

// EventBroadcaster pushes ticket events to connected clients.
type EventBroadcaster interface {
	BroadcastTicketEvent(eventType string, ticket *domain.Ticket)
}
