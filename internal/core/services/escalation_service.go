package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/lorrc/helpdesk-backend/internal/core/ports"
)

// EscalationService periodically escalates tickets that sat unresolved
// past their priority's timeframe.
type EscalationService struct {
	ticketRepo  ports.TicketRepository
	notifier    ports.Notifier
	broadcaster ports.EventBroadcaster
	clock       ports.Clock
	interval    time.Duration
	logger      *slog.Logger
}

// NewEscalationService creates the background escalation sweeper.
func NewEscalationService(
	ticketRepo ports.TicketRepository,
	notifier ports.Notifier,
	broadcaster ports.EventBroadcaster,
	clock ports.Clock,
	interval time.Duration,
	logger *slog.Logger,
) *EscalationService {
	if clock == nil {
		clock = ports.RealClock{}
	}
	return &EscalationService{
		ticketRepo:  ticketRepo,
		notifier:    notifier,
		broadcaster: broadcaster,
		clock:       clock,
		interval:    interval,
		logger:      logger,
	}
}

// Run sweeps on a fixed interval until the context is cancelled.
func (s *EscalationService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.Sweep(ctx); err != nil {
				s.logger.Error("escalation sweep failed", "error", err)
			} else if n > 0 {
				s.logger.Info("escalated overdue tickets", "count", n)
			}
		}
	}
}

// Sweep escalates every overdue ticket once and returns how many
// tickets changed state.
func (s *EscalationService) Sweep(ctx context.Context) (int, error) {
	now := s.clock.Now()

	overdue, err := s.ticketRepo.ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	escalated := 0
	for _, ticket := range overdue {
		if !ticket.Escalate(now) {
			continue
		}
		if err := s.ticketRepo.Update(ctx, ticket); err != nil {
			s.logger.Error("failed to persist escalation", "ticket_id", ticket.ID, "error", err)
			continue
		}

		escalated++
		_ = s.notifier.NotifyTicketEscalated(ctx, ticket)
		s.broadcaster.BroadcastTicketEvent(EventTicketEscalated, ticket)
	}
	return escalated, nil
}
