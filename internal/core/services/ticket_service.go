package services

import (
	"context"
	"sync"
	"time"

	"github.com/lorrc/helpdesk-backend/internal/core/domain"
	apperrors "github.com/lorrc/helpdesk-backend/internal/core/errors"
	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// Ticket event names pushed over the broadcaster.
const (
	EventTicketCreated   = "ticket.created"
	EventTicketUpdated   = "ticket.updated"
	EventTicketEscalated = "ticket.escalated"
	EventTicketDeleted   = "ticket.deleted"
)

// TicketService implements business logic for ticket management
type TicketService struct {
	ticketRepo  ports.TicketRepository
	notifier    ports.Notifier
	broadcaster ports.EventBroadcaster
	wg          sync.WaitGroup
}

var _ ports.TicketService = (*TicketService)(nil)

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo ports.TicketRepository,
	notifier ports.Notifier,
	broadcaster ports.EventBroadcaster,
) *TicketService {
	return &TicketService{
		ticketRepo:  ticketRepo,
		notifier:    notifier,
		broadcaster: broadcaster,
	}
}

// CreateTicket handles the use case for submitting a new ticket
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, params ports.CreateTicketParams) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	ticket, err := domain.NewTicket(domain.TicketParams{
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return nil, err // Validation errors are returned here
	}

	// Escalation deadline is fixed at creation from the priority.
	deadline := ticket.CreatedAt.Add(ticket.Priority.EscalationTimeframe())
	ticket.EscalationDate = &deadline

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.notifyAsync(ticket, s.notifier.NotifyTicketCreated)
	s.broadcaster.BroadcastTicketEvent(EventTicketCreated, ticket)
	return ticket, nil
}

// GetTicket retrieves a specific ticket if the actor's scope covers it.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, id int64) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	scope := domain.ScopeFor(actor.ID, actor.Role)
	if !scope.Matches(ticket) {
		return nil, apperrors.ErrForbidden
	}
	return ticket, nil
}

// ListTickets retrieves tickets visible to the actor, newest first.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter ports.TicketFilter) ([]*domain.Ticket, int64, error) {
	if actor == nil {
		return nil, 0, apperrors.ErrUnauthorized
	}

	scope := domain.ScopeFor(actor.ID, actor.Role)
	return s.ticketRepo.List(ctx, scope, filter)
}

// UpdateTicket applies a partial update. Only admins and agents may
// change status or assignee; the creator may edit title, description
// and priority.
func (s *TicketService) UpdateTicket(ctx context.Context, actor *domain.User, id int64, params ports.UpdateTicketParams) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	scope := domain.ScopeFor(actor.ID, actor.Role)
	if !scope.Matches(ticket) {
		return nil, apperrors.ErrForbidden
	}

	isStaff := actor.Role == domain.RoleAdmin || actor.Role == domain.RoleAgent
	if (params.Status != nil || params.AssignedTo != nil) && !isStaff {
		return nil, apperrors.ErrForbidden
	}

	if params.Title != nil {
		if *params.Title == "" {
			return nil, apperrors.ErrTitleRequired
		}
		if len(*params.Title) > domain.MaxTitleLength {
			return nil, apperrors.ErrTitleTooLong
		}
		ticket.Title = *params.Title
	}
	if params.Description != nil {
		if len(*params.Description) > domain.MaxDescriptionLength {
			return nil, apperrors.ErrDescriptionTooLong
		}
		ticket.Description = *params.Description
	}
	if params.Priority != nil {
		if !params.Priority.IsValid() {
			return nil, apperrors.ErrInvalidPriority
		}
		ticket.Priority = *params.Priority
	}
	if params.AssignedTo != nil {
		if err := ticket.Assign(*params.AssignedTo); err != nil {
			return nil, err
		}
	}
	if params.Status != nil {
		// Domain validates the transition and stamps ResolvedAt.
		if err := ticket.UpdateStatus(*params.Status); err != nil {
			return nil, err
		}
	}
	ticket.UpdatedAt = time.Now().UTC()

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.notifyAsync(ticket, s.notifier.NotifyTicketUpdated)
	s.broadcaster.BroadcastTicketEvent(EventTicketUpdated, ticket)
	return ticket, nil
}

// DeleteTicket removes a ticket and its comments. Admin only.
func (s *TicketService) DeleteTicket(ctx context.Context, actor *domain.User, id int64) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}
	if actor.Role != domain.RoleAdmin {
		return apperrors.ErrForbidden
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.ticketRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.broadcaster.BroadcastTicketEvent(EventTicketDeleted, ticket)
	return nil
}

// notifyAsync sends a notification in the background. The HTTP request
// may already be done, so a fresh context is used.
func (s *TicketService) notifyAsync(ticket *domain.Ticket, send func(context.Context, *domain.Ticket) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = send(context.Background(), ticket)
	}()
}

// Shutdown waits for in-flight notifications to drain.
func (s *TicketService) Shutdown() {
	s.wg.Wait()
}
