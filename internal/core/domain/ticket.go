package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
)

// Field length limits for ticket validation
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 10000
)

// TicketStatus represents the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
	StatusEscalated  TicketStatus = "escalated"
)

// AllStatuses lists every status in reporting order.
var AllStatuses = []TicketStatus{
	StatusOpen,
	StatusInProgress,
	StatusResolved,
	StatusClosed,
	StatusEscalated,
}

// ResolvedStatuses is the fixed two-element set counted as "resolved"
// by every report. A ticket in either status contributed to resolution.
var ResolvedStatuses = []TicketStatus{StatusResolved, StatusClosed}

// IsValid reports whether the status is a known lifecycle state.
func (s TicketStatus) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed, StatusEscalated:
		return true
	}
	return false
}

// IsResolvedOrClosed reports whether the status counts toward resolution metrics.
func (s TicketStatus) IsResolvedOrClosed() bool {
	return s == StatusResolved || s == StatusClosed
}

func (s TicketStatus) String() string {
	return string(s)
}

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
)

// PriorityOrder is the fixed presentation order used by priority reports.
var PriorityOrder = []TicketPriority{PriorityHigh, PriorityMedium, PriorityLow}

// IsValid reports whether the priority is a known level.
func (p TicketPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p TicketPriority) String() string {
	return string(p)
}

// EscalationTimeframe returns how long an unresolved ticket of this
// priority may sit before it is escalated.
func (p TicketPriority) EscalationTimeframe() time.Duration {
	switch p {
	case PriorityHigh:
		return 1 * time.Hour
	case PriorityMedium:
		return 4 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Ticket is the core domain entity.
type Ticket struct {
	ID             int64
	Title          string
	Description    string
	Priority       TicketPriority
	Status         TicketStatus
	CreatedBy      uuid.UUID
	AssignedTo     *uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ResolvedAt     *time.Time
	EscalationDate *time.Time
}

// TicketParams holds the input for creating a new ticket.
type TicketParams struct {
	Title       string
	Description string
	Priority    TicketPriority
	CreatedBy   uuid.UUID
}

// Validate checks ticket creation parameters and collects field errors.
func (p *TicketParams) Validate() error {
	errs := apperrors.NewValidationErrors()

	if p.Title == "" {
		errs.Add("title", "Title is required")
	} else if len(p.Title) > MaxTitleLength {
		errs.Add("title", "Title must be 200 characters or less")
	}

	if len(p.Description) > MaxDescriptionLength {
		errs.Add("description", "Description exceeds maximum length")
	}

	if !p.Priority.IsValid() {
		errs.Add("priority", "Priority must be one of: low, medium, high")
	}

	if p.CreatedBy == uuid.Nil {
		errs.Add("createdBy", "Creator ID is required")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// NewTicket is a factory function to create a valid new ticket.
func NewTicket(params TicketParams) (*Ticket, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Ticket{
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		Status:      StatusOpen,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// validTransitions defines the allowed status transitions. Closed is terminal.
var validTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen:       {StatusInProgress, StatusResolved, StatusClosed, StatusEscalated},
	StatusInProgress: {StatusOpen, StatusResolved, StatusClosed, StatusEscalated},
	StatusResolved:   {StatusOpen, StatusInProgress, StatusClosed},
	StatusEscalated:  {StatusInProgress, StatusResolved, StatusClosed},
	StatusClosed:     {},
}

// UpdateStatus changes the ticket's status, enforcing transition rules.
// Transitioning into resolved stamps ResolvedAt.
func (t *Ticket) UpdateStatus(newStatus TicketStatus) error {
	if !newStatus.IsValid() {
		return apperrors.ErrInvalidStatus
	}

	allowed, ok := validTransitions[t.Status]
	if !ok {
		return apperrors.ErrInvalidStatusTransition
	}

	for _, s := range allowed {
		if s != newStatus {
			continue
		}

		now := time.Now().UTC()
		t.Status = newStatus
		t.UpdatedAt = now
		if newStatus == StatusResolved && t.ResolvedAt == nil {
			t.ResolvedAt = &now
		}
		return nil
	}

	return apperrors.ErrInvalidStatusTransition
}

// Assign sets or changes the assignee of the ticket.
func (t *Ticket) Assign(assigneeID uuid.UUID) error {
	if t.Status == StatusClosed {
		return apperrors.ErrCannotAssignClosed
	}
	t.AssignedTo = &assigneeID
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Escalate marks the ticket escalated and stamps the escalation date.
// Already-resolved tickets are left alone.
func (t *Ticket) Escalate(now time.Time) bool {
	if t.Status.IsResolvedOrClosed() || t.Status == StatusEscalated {
		return false
	}
	t.Status = StatusEscalated
	t.EscalationDate = &now
	t.UpdatedAt = now
	return true
}

// IsOwnedBy reports whether the given user created the ticket.
func (t *Ticket) IsOwnedBy(userID uuid.UUID) bool {
	return t.CreatedBy == userID
}

// IsAssignedTo reports whether the ticket is assigned to the given user.
func (t *Ticket) IsAssignedTo(userID uuid.UUID) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

// ResolutionDuration returns the time between creation and resolution.
// The second return is false when the ticket never recorded a resolution
// timestamp, which reports must tolerate even for closed tickets.
func (t *Ticket) ResolutionDuration() (time.Duration, bool) {
	if t.ResolvedAt == nil {
		return 0, false
	}
	return t.ResolvedAt.Sub(t.CreatedAt), true
}
